package dto

import (
	"time"

	"github.com/work-nest/backoffice/internal/domain"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// BookingResponse is the API view of a booking.
type BookingResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Status         domain.BookingStatus `json:"status"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	AssignedUserID string               `json:"assigned_user_id"`
	ClientID       string               `json:"client_id"`
	CreatedAt      time.Time            `json:"created_at"`
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID,
		Title:          booking.Title,
		Description:    booking.Description,
		Status:         booking.Status,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		AssignedUserID: booking.AssignedUserID,
		ClientID:       booking.ClientID,
		CreatedAt:      booking.CreatedAt,
	}
}

// NewBookingResponses maps a slice of bookings.
func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, NewBookingResponse(&bookings[i]))
	}
	return result
}

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         domain.BookingStatus `json:"status"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	AssignedUserID string               `json:"assigned_user_id"`
	ClientID       string               `json:"client_id"`
}

// Validate checks request shape; the temporal rules live in the service.
func (r *CreateBookingRequest) Validate() error {
	if r.Title == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if r.AssignedUserID == "" || r.ClientID == "" {
		return apperrors.NewValidationError("assigned_user_id and client_id are required", nil)
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return apperrors.NewValidationError("start_time and end_time are required", nil)
	}
	if r.Status != "" && !r.Status.Valid() {
		return apperrors.NewValidationError("invalid booking status", nil)
	}
	return nil
}

// UpdateBookingRequest is a partial update payload.
type UpdateBookingRequest struct {
	Title          *string               `json:"title,omitempty"`
	Description    *string               `json:"description,omitempty"`
	Status         *domain.BookingStatus `json:"status,omitempty"`
	StartTime      *time.Time            `json:"start_time,omitempty"`
	EndTime        *time.Time            `json:"end_time,omitempty"`
	AssignedUserID *string               `json:"assigned_user_id,omitempty"`
	ClientID       *string               `json:"client_id,omitempty"`
}

// Validate checks request shape.
func (r *UpdateBookingRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return apperrors.NewValidationError("invalid booking status", nil)
	}
	if r.Title != nil && *r.Title == "" {
		return apperrors.NewValidationError("title cannot be empty", nil)
	}
	return nil
}

// ListBookingsQuery captures listing filters from the query string.
type ListBookingsQuery struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}
