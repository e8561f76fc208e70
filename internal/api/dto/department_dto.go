package dto

import (
	"time"

	"github.com/work-nest/backoffice/internal/domain"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// DepartmentResponse is the API view of a department.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HodID     *string   `json:"hod_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		HodID:     dept.HodID,
		CreatedAt: dept.CreatedAt,
	}
}

// NewDepartmentResponses maps a slice of departments.
func NewDepartmentResponses(depts []domain.Department) []DepartmentResponse {
	result := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, NewDepartmentResponse(&depts[i]))
	}
	return result
}

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// Validate checks request shape.
func (r *CreateDepartmentRequest) Validate() error {
	if r.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	return nil
}

// UpdateDepartmentNameRequest payload.
type UpdateDepartmentNameRequest struct {
	Name string `json:"name"`
}

// Validate checks request shape.
func (r *UpdateDepartmentNameRequest) Validate() error {
	if r.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	return nil
}

// AppointHODRequest payload; a nil user id clears the HOD.
type AppointHODRequest struct {
	UserID *string `json:"user_id"`
}

// DeleteDepartmentRequest carries the member disposition for deletion.
type DeleteDepartmentRequest struct {
	Disposition        domain.MemberDisposition `json:"disposition"`
	TargetDepartmentID *string                  `json:"target_department_id,omitempty"`
}

// Validate checks request shape. An omitted disposition defaults to NONE,
// which only passes when the department has no active members.
func (r *DeleteDepartmentRequest) Validate() error {
	if r.Disposition == "" {
		r.Disposition = domain.DispositionNone
	}
	if !r.Disposition.Valid() {
		return apperrors.NewValidationError("disposition must be NONE, REASSIGN or DEACTIVATE", nil)
	}
	return nil
}
