package dto

import (
	"github.com/work-nest/backoffice/internal/domain"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// InviteUserRequest payload for inviting a new staff member.
type InviteUserRequest struct {
	Email        string             `json:"email"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Role         domain.AccountRole `json:"role"`
	DepartmentID *string            `json:"department_id,omitempty"`
}

// Validate checks request shape.
func (r *InviteUserRequest) Validate() error {
	if !validEmail(r.Email) {
		return apperrors.NewValidationError("a valid email is required", nil)
	}
	if r.FirstName == "" || r.LastName == "" {
		return apperrors.NewValidationError("first_name and last_name are required", nil)
	}
	if !r.Role.Valid() {
		return apperrors.NewValidationError("role must be ADMIN or STAFF", nil)
	}
	return nil
}

// AcceptInvitationRequest payload for accepting an invitation.
type AcceptInvitationRequest struct {
	Token             string  `json:"token"`
	Password          string  `json:"password"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// Validate checks request shape.
func (r *AcceptInvitationRequest) Validate() error {
	if r.Token == "" {
		return apperrors.NewValidationError("token is required", nil)
	}
	if len(r.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	return nil
}
