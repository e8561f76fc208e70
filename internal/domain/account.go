package domain

import "time"

// AccountRole enumerates workforce roles.
type AccountRole string

const (
	RoleAdmin AccountRole = "ADMIN"
	RoleStaff AccountRole = "STAFF"
)

// Valid reports whether the role is a known value.
func (r AccountRole) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// AccountStatus represents lifecycle states for a staff account.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account is the domain model for staff and administrator identities.
// HashedPassword is nil while the account is mid-invitation; such an
// account cannot authenticate by password.
type Account struct {
	ID                   string
	Email                string
	HashedPassword       *string
	FirstName            string
	LastName             string
	Role                 AccountRole
	Status               AccountStatus
	ProfilePictureURL    *string
	DepartmentID         *string
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CanAuthenticate reports whether the account has a usable password.
func (a *Account) CanAuthenticate() bool {
	return a != nil && a.HashedPassword != nil
}
