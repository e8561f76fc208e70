package dto

import (
	"time"

	"github.com/work-nest/backoffice/internal/domain"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// AccountResponse is the sanitized account view; the password hash and
// reset-token fields never leave the service.
type AccountResponse struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Role              domain.AccountRole `json:"role"`
	Status            domain.AccountStatus `json:"status"`
	ProfilePictureURL *string            `json:"profile_picture_url,omitempty"`
	DepartmentID      *string            `json:"department_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// NewAccountResponse maps a domain account to its API view.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                account.ID,
		Email:             account.Email,
		FirstName:         account.FirstName,
		LastName:          account.LastName,
		Role:              account.Role,
		Status:            account.Status,
		ProfilePictureURL: account.ProfilePictureURL,
		DepartmentID:      account.DepartmentID,
		CreatedAt:         account.CreatedAt,
	}
}

// NewAccountResponses maps a slice of accounts.
func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	result := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, NewAccountResponse(&accounts[i]))
	}
	return result
}

// UpdateProfileRequest payload for profile-picture updates.
type UpdateProfileRequest struct {
	ProfilePictureURL string `json:"profile_picture_url"`
}

// Validate checks request shape.
func (r *UpdateProfileRequest) Validate() error {
	if r.ProfilePictureURL == "" {
		return apperrors.NewValidationError("profile_picture_url is required", nil)
	}
	return nil
}
