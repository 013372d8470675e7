package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/service"
)

// UsersHandler exposes the user directory.
type UsersHandler struct {
	service *service.TrackerService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(trackerService *service.TrackerService) *UsersHandler {
	return &UsersHandler{service: trackerService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}
