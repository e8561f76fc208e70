package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/work-nest/backoffice/internal/api/dto"
	"github.com/work-nest/backoffice/internal/service"
)

// InvitationHandler exposes invite / accept-invite endpoints.
type InvitationHandler struct {
	invitations *service.InvitationService
}

// NewInvitationHandler constructs handler.
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitationService}
}

// InviteUser handles POST /invitation/invite-user (admin only).
func (h *InvitationHandler) InviteUser(c *fiber.Ctx) error {
	var req dto.InviteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	account, _, err := h.invitations.InviteUser(c.Context(), service.InviteInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewAccountResponse(account),
		},
	})
}

// AcceptInvitation handles POST /invitation/accept-invite (public).
func (h *InvitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	var req dto.AcceptInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	token, exp, err := h.invitations.AcceptInvitation(c.Context(), service.AcceptInput{
		Token:             req.Token,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
