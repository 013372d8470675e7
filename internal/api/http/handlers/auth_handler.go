package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/api/dto"
	"github.com/pytracker/tracker-service/internal/auth"
	"github.com/pytracker/tracker-service/internal/service"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// AuthHandler exposes login and registration.
type AuthHandler struct {
	service *service.TrackerService
	tokens  *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(trackerService *service.TrackerService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{service: trackerService, tokens: tokens}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
