package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/service"
)

// AuthHandler exposes credential authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewAccountResponse(account),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	message, err := h.auth.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message}})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	message, err := h.auth.ResetPassword(c.Context(), req.Token, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message}})
}

// ChangePassword handles POST /auth/change-password for the caller.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	message, err := h.auth.ChangePassword(c.Context(), principal.Account.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": message}})
}
