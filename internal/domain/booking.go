package domain

import "time"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Valid reports whether the status is a known value.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking is an appointment assigned to a staff account on behalf of a client.
type Booking struct {
	ID             string
	Title          string
	Description    string
	Status         BookingStatus
	StartTime      time.Time
	EndTime        time.Time
	AssignedUserID string
	ClientID       string
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
