package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/config"
	"github.com/work-nest/backoffice/internal/domain"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/repository"
	apperrors "github.com/work-nest/backoffice/pkg/util/errorutil"
)

const bookingConflictMessage = "The assigned user already has a booking at this time"

// BookingService coordinates booking scheduling and conflict validation.
type BookingService struct {
	bookings   repository.BookingRepository
	accounts   repository.AccountRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	// overlapCheck switches conflict detection from the default
	// exact-start-time rule to interval overlap.
	overlapCheck bool
	now          func() time.Time
}

// BookingDependencies bundles requirements for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	AccountRepo repository.AccountRepository
	ClientRepo  repository.ClientRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewBookingService builds the service.
func NewBookingService(cfg config.BookingConfig, deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:     deps.BookingRepo,
		accounts:     deps.AccountRepo,
		clients:      deps.ClientRepo,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		overlapCheck: cfg.OverlapCheck,
		now:          time.Now,
	}
}

// BookingCreateInput describes booking creation.
type BookingCreateInput struct {
	Title          string
	Description    string
	Status         domain.BookingStatus
	StartTime      time.Time
	EndTime        time.Time
	AssignedUserID string
	ClientID       string
}

// BookingUpdateInput describes a partial booking update.
type BookingUpdateInput struct {
	Title          *string
	Description    *string
	Status         *domain.BookingStatus
	StartTime      *time.Time
	EndTime        *time.Time
	AssignedUserID *string
	ClientID       *string
}

// BookingListInput describes listing parameters before clamping.
type BookingListInput struct {
	Search    *string
	Status    *domain.BookingStatus
	StartFrom *time.Time
	StartTo   *time.Time
	Page      int
	Limit     int
}

// BookingPage is a listing result.
type BookingPage struct {
	Bookings   []domain.Booking
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Create validates times and the conflict rule, then persists the booking.
func (s *BookingService) Create(ctx context.Context, input BookingCreateInput) (*domain.Booking, error) {
	if err := s.validateWindow(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByID(ctx, input.AssignedUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("Assigned user not found")
		}
		return nil, err
	}
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("Client not found")
		}
		return nil, err
	}
	if err := s.checkConflict(ctx, input.AssignedUserID, input.StartTime, input.EndTime, nil); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.BookingStatusPending
	}
	booking := &domain.Booking{
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		AssignedUserID: input.AssignedUserID,
		ClientID:       input.ClientID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	publishAsync(s.dispatcher, events.Event{
		Type: events.EventBookingCreated,
		Payload: events.BookingCreatedPayload{
			BookingID:      booking.ID,
			AssignedUserID: booking.AssignedUserID,
			ClientID:       booking.ClientID,
			StartTime:      booking.StartTime,
		},
	})
	return booking, nil
}

// Update applies a partial update, re-running the temporal and conflict
// validation over the resulting booking.
func (s *BookingService) Update(ctx context.Context, id string, input BookingUpdateInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("Booking not found")
		}
		return nil, err
	}

	if input.Title != nil {
		booking.Title = *input.Title
	}
	if input.Description != nil {
		booking.Description = *input.Description
	}
	if input.Status != nil {
		booking.Status = *input.Status
	}
	if input.StartTime != nil {
		booking.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		booking.EndTime = *input.EndTime
	}
	if input.AssignedUserID != nil {
		booking.AssignedUserID = *input.AssignedUserID
	}
	if input.ClientID != nil {
		booking.ClientID = *input.ClientID
	}

	if input.StartTime != nil || input.EndTime != nil {
		if err := s.validateWindow(booking.StartTime, booking.EndTime); err != nil {
			return nil, err
		}
	}
	// Under interval-overlap mode an end-time change alone can collide
	// with another booking's window, so it re-triggers the check too.
	recheck := input.StartTime != nil || input.AssignedUserID != nil
	if s.overlapCheck && input.EndTime != nil {
		recheck = true
	}
	if recheck {
		if err := s.checkConflict(ctx, booking.AssignedUserID, booking.StartTime, booking.EndTime, &booking.ID); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Get returns a non-deleted booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"id": id})
		}
		return nil, err
	}
	return booking, nil
}

// List returns a filtered booking page. Page and limit are clamped to
// sane bounds (limit 1..100).
func (s *BookingService) List(ctx context.Context, input BookingListInput) (*BookingPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.BookingFilter{
		Search:    input.Search,
		Status:    input.Status,
		StartFrom: input.StartFrom,
		StartTo:   input.StartTo,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	bookings, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}
	return &BookingPage{
		Bookings:   bookings,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Delete soft-deletes a booking without checking dependents.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.bookings.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("Booking not found")
		}
		return err
	}
	return nil
}

// validateWindow enforces the temporal rule: both ends strictly in the
// future and a positive duration.
func (s *BookingService) validateWindow(start, end time.Time) error {
	now := s.now()
	if !start.After(now) {
		return apperrors.NewBadRequest("Start time must be in the future")
	}
	if !end.After(now) {
		return apperrors.NewBadRequest("End time must be in the future")
	}
	if !end.After(start) {
		return apperrors.NewBadRequest("End time must be after start time")
	}
	return nil
}

// checkConflict is a best-effort check-then-act guard; the partial unique
// index on (assigned_user_id, start_time) closes the race at commit time.
func (s *BookingService) checkConflict(ctx context.Context, assignedUserID string, start, end time.Time, excludeID *string) error {
	var exists bool
	var err error
	if s.overlapCheck {
		exists, err = s.bookings.ExistsOverlapping(ctx, assignedUserID, start, end, excludeID)
	} else {
		exists, err = s.bookings.ExistsAtStart(ctx, assignedUserID, start, excludeID)
	}
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewBadRequest(bookingConflictMessage)
	}
	return nil
}
