package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/api/dto"
	"github.com/pytracker/tracker-service/internal/service"
	"github.com/pytracker/tracker-service/internal/store"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// ProjectsHandler exposes project endpoints.
type ProjectsHandler struct {
	service *service.TrackerService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(trackerService *service.TrackerService) *ProjectsHandler {
	return &ProjectsHandler{service: trackerService}
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.service.ListProjects(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projects})
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Key == "" {
		return apperrors.NewValidationError("name and key required", nil)
	}

	project, err := h.service.CreateProject(c.UserContext(), store.ProjectCreateInput{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": project})
}
