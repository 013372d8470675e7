package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/api/dto"
	"github.com/pytracker/tracker-service/internal/service"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// TicketsHandler exposes ticket endpoints.
type TicketsHandler struct {
	service *service.TrackerService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(trackerService *service.TrackerService) *TicketsHandler {
	return &TicketsHandler{service: trackerService}
}

// List handles GET /tickets, optionally filtered by ?project_id=.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext(), c.Query("project_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProjectID == "" || req.Title == "" {
		return apperrors.NewValidationError("project_id and title required", nil)
	}
	if req.Reporter.ID == "" {
		return apperrors.NewValidationError("reporter required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee.ToDomain(),
		Reporter:    *req.Reporter.ToDomain(),
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Delete handles DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
