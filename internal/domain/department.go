package domain

import "time"

// Department represents an organizational unit. Departments are never
// hard-deleted; IsDeleted flags retirement and reads filter on it.
type Department struct {
	ID        string
	Name      string
	HodID     *string
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberDisposition is the chosen handling for a department's ACTIVE
// members when the department is deleted.
type MemberDisposition string

const (
	DispositionNone       MemberDisposition = "NONE"
	DispositionReassign   MemberDisposition = "REASSIGN"
	DispositionDeactivate MemberDisposition = "DEACTIVATE"
)

// Valid reports whether the disposition is a known value.
func (d MemberDisposition) Valid() bool {
	switch d {
	case DispositionNone, DispositionReassign, DispositionDeactivate:
		return true
	}
	return false
}
