package events

import (
	"time"

	"github.com/work-nest/backoffice/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserInvited            EventType = "user_invited"
	EventInvitationAccepted     EventType = "invitation_accepted"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventDepartmentDeleted      EventType = "department_deleted"
	EventBookingCreated         EventType = "booking_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserInvitedPayload carries what the invitation email needs. Token is the
// signed invitation token, valid for the configured invitation window.
type UserInvitedPayload struct {
	AccountID string             `json:"account_id"`
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Role      domain.AccountRole `json:"role"`
	Token     string             `json:"-"`
}

// InvitationAcceptedPayload payload.
type InvitationAcceptedPayload struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// PasswordResetRequestedPayload carries the raw reset token for the email
// link; only its hash is persisted.
type PasswordResetRequestedPayload struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Token     string `json:"-"`
}

// DepartmentDeletedPayload payload.
type DepartmentDeletedPayload struct {
	DepartmentID string                   `json:"department_id"`
	Disposition  domain.MemberDisposition `json:"disposition"`
	MovedMembers int                      `json:"moved_members"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID      string    `json:"booking_id"`
	AssignedUserID string    `json:"assigned_user_id"`
	ClientID       string    `json:"client_id"`
	StartTime      time.Time `json:"start_time"`
}
