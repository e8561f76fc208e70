package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

// deleteTxTimeout bounds the member-disposition transaction.
const deleteTxTimeout = 10 * time.Second

// DepartmentService coordinates department workflows, most notably the
// deletion orchestration that disperses active members first.
type DepartmentService struct {
	departments repository.DepartmentRepository
	accounts    repository.AccountRepository
	tx          repository.TxRunner
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// DepartmentDependencies bundles requirements for the department service.
type DepartmentDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	AccountRepo    repository.AccountRepository
	Tx             repository.TxRunner
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewDepartmentService builds the service.
func NewDepartmentService(deps DepartmentDependencies) *DepartmentService {
	return &DepartmentService{
		departments: deps.DepartmentRepo,
		accounts:    deps.AccountRepo,
		tx:          deps.Tx,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// Create adds a department; names are unique among non-deleted departments.
func (s *DepartmentService) Create(ctx context.Context, name string) (*domain.Department, string, error) {
	existing, err := s.departments.FindActiveByName(ctx, name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.NewBadRequest(fmt.Sprintf("An active %s department already exists", existing.Name))
	}

	dept := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, "", err
	}
	return dept, fmt.Sprintf("%s department created successfully", dept.Name), nil
}

// List returns non-deleted departments ordered by creation time.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// Get returns a non-deleted department by id.
func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
		}
		return nil, err
	}
	return dept, nil
}

// UpdateName renames a department.
func (s *DepartmentService) UpdateName(ctx context.Context, id, name string) (*domain.Department, string, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewBadRequest("Department not found")
		}
		return nil, "", err
	}
	if err := s.departments.UpdateName(ctx, id, name); err != nil {
		return nil, "", err
	}
	dept.Name = name
	return dept, fmt.Sprintf("Department name updated to %s successfully", name), nil
}

// SearchByName finds departments whose name contains the query, case-insensitively.
func (s *DepartmentService) SearchByName(ctx context.Context, query string) ([]domain.Department, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Department{}, nil
	}
	return s.departments.SearchByName(ctx, query)
}

// GetEmployees lists ACTIVE accounts, optionally scoped to one department.
func (s *DepartmentService) GetEmployees(ctx context.Context, departmentID *string) ([]domain.Account, error) {
	if departmentID != nil {
		if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewBadRequest("Department not found")
			}
			return nil, err
		}
	}
	return s.accounts.ListActive(ctx, departmentID)
}

// GetEmployeeByID fetches one account for mutation-style reads.
func (s *DepartmentService) GetEmployeeByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("Employee not found")
		}
		return nil, err
	}
	return account, nil
}

// UpdateHOD appoints or clears the head of department. Appointees must
// already belong to the department.
func (s *DepartmentService) UpdateHOD(ctx context.Context, departmentID string, userID *string) (*domain.Department, string, error) {
	dept, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewBadRequest("Department not found")
		}
		return nil, "", err
	}

	if userID == nil {
		if err := s.departments.SetHOD(ctx, departmentID, nil); err != nil {
			return nil, "", err
		}
		dept.HodID = nil
		return dept, "HOD removed successfully", nil
	}

	user, err := s.accounts.GetByID(ctx, *userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewBadRequest("User not found")
		}
		return nil, "", err
	}
	if user.DepartmentID == nil || *user.DepartmentID != departmentID {
		return nil, "", apperrors.NewBadRequest("User does not belong to this department")
	}

	if err := s.departments.SetHOD(ctx, departmentID, userID); err != nil {
		return nil, "", err
	}
	dept.HodID = userID
	return dept, fmt.Sprintf("%s %s has been appointed as the HOD of %s", user.FirstName, user.LastName, dept.Name), nil
}

// Delete soft-deletes a department after dispersing its ACTIVE members per
// the requested disposition. Member updates and the soft delete commit in
// one transaction; a concurrent reader never observes a partial state.
//
// The department's HOD pointer is left as-is: reads filter on is_deleted,
// which makes the pointer inert once the department is retired.
func (s *DepartmentService) Delete(ctx context.Context, departmentID string, disposition domain.MemberDisposition, targetDepartmentID *string) (string, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewBadRequest("Department not found or already deleted")
		}
		return "", err
	}

	activeCount, err := s.accounts.CountActiveByDepartment(ctx, departmentID)
	if err != nil {
		return "", err
	}

	switch disposition {
	case domain.DispositionNone:
		if activeCount > 0 {
			return "", apperrors.NewBadRequest("Department has active employees; choose REASSIGN or DEACTIVATE")
		}
	case domain.DispositionReassign:
		if targetDepartmentID == nil {
			return "", apperrors.NewBadRequest("Target department is required for REASSIGN")
		}
		if *targetDepartmentID == departmentID {
			return "", apperrors.NewBadRequest("Target department must differ from the department being deleted")
		}
		if _, err := s.departments.GetByID(ctx, *targetDepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.NewBadRequest("Target department not found")
			}
			return "", err
		}
	case domain.DispositionDeactivate:
		// no further checks
	default:
		return "", apperrors.NewBadRequest("Invalid disposition")
	}

	err = s.tx.WithinTx(ctx, deleteTxTimeout, func(ctx context.Context) error {
		switch disposition {
		case domain.DispositionReassign:
			if err := s.accounts.ReassignDepartment(ctx, departmentID, *targetDepartmentID); err != nil {
				return err
			}
		case domain.DispositionDeactivate:
			if err := s.accounts.DeactivateByDepartment(ctx, departmentID); err != nil {
				return err
			}
		}
		return s.departments.SoftDelete(ctx, departmentID)
	})
	if err != nil {
		return "", err
	}

	publishAsync(s.dispatcher, events.Event{
		Type: events.EventDepartmentDeleted,
		Payload: events.DepartmentDeletedPayload{
			DepartmentID: departmentID,
			Disposition:  disposition,
			MovedMembers: activeCount,
		},
	})
	return "Department deleted successfully", nil
}
