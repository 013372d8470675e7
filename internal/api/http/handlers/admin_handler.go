package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/service"
)

// AdminHandler exposes development-only operations.
type AdminHandler struct {
	service *service.TrackerService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(trackerService *service.TrackerService) *AdminHandler {
	return &AdminHandler{service: trackerService}
}

// Reset handles POST /admin/reset, reseeding every store with the boot
// dataset. Registered only in the development environment.
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "reseeded"})
}
