package domain

import "time"

// Client is an external customer that bookings are scheduled for.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
