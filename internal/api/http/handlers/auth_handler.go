package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdeskpro/helpdesk-service/internal/api/dto"
	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/service"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
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

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func refSummary(ref domain.UserRef) dto.UserSummary {
	if user, ok := ref.User(); ok {
		return dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return dto.UserSummary{ID: ref.ID()}
}
