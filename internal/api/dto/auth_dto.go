package dto

import (
	"strings"
	"time"

	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks request shape.
func (r *LoginRequest) Validate() error {
	if !validEmail(r.Email) {
		return apperrors.NewValidationError("a valid email is required", nil)
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}
	return nil
}

// ForgotPasswordRequest payload for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate checks request shape.
func (r *ForgotPasswordRequest) Validate() error {
	if !validEmail(r.Email) {
		return apperrors.NewValidationError("a valid email is required", nil)
	}
	return nil
}

// ResetPasswordRequest payload for consuming a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate checks request shape.
func (r *ResetPasswordRequest) Validate() error {
	if r.Token == "" {
		return apperrors.NewValidationError("token is required", nil)
	}
	if len(r.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	return nil
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks request shape.
func (r *ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return apperrors.NewValidationError("old_password is required", nil)
	}
	if len(r.NewPassword) < 8 {
		return apperrors.NewValidationError("new_password must be at least 8 characters", nil)
	}
	return nil
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && strings.Contains(email[at:], ".")
}
