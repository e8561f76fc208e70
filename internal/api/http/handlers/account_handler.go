package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/auth"
	"github.com/work-nest/backoffice/internal/service"
)

// AccountHandler exposes profile self-service endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs handler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accountService}
}

// Profile handles GET /user/profile.
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	account, err := h.accounts.GetProfile(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewAccountResponse(account)}})
}

// UpdateProfilePicture handles PATCH /user/profile-picture.
func (h *AccountHandler) UpdateProfilePicture(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := h.accounts.UpdateProfilePicture(c.Context(), principal.Account.ID, req.ProfilePictureURL); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Profile updated successfully"}})
}
