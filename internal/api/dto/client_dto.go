package dto

import (
	"time"

	"github.com/work-nest/backoffice/internal/domain"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// ClientResponse is the API view of a client.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewClientResponse maps a domain client.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		CreatedAt: client.CreatedAt,
	}
}

// NewClientResponses maps a slice of clients.
func NewClientResponses(clients []domain.Client) []ClientResponse {
	result := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		result = append(result, NewClientResponse(&clients[i]))
	}
	return result
}

// CreateClientRequest payload.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks request shape.
func (r *CreateClientRequest) Validate() error {
	if r.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if !validEmail(r.Email) {
		return apperrors.NewValidationError("a valid email is required", nil)
	}
	return nil
}
