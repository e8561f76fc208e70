package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/work-nest/backoffice/internal/domain"
)

const bookingColumns = `id, title, description, status, start_time, end_time,
               assigned_user_id, client_id, is_deleted, created_at, updated_at`

// BookingFilter captures listing parameters.
type BookingFilter struct {
	Search    *string
	Status    *domain.BookingStatus
	StartFrom *time.Time
	StartTo   *time.Time
	Limit     int
	Offset    int
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	SoftDelete(ctx context.Context, id string) error
	ExistsAtStart(ctx context.Context, assignedUserID string, start time.Time, excludeID *string) (bool, error)
	ExistsOverlapping(ctx context.Context, assignedUserID string, start, end time.Time, excludeID *string) (bool, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (title, description, status, start_time, end_time, assigned_user_id, client_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, is_deleted, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		booking.Title,
		booking.Description,
		booking.Status,
		booking.StartTime,
		booking.EndTime,
		booking.AssignedUserID,
		booking.ClientID,
	).Scan(&booking.ID, &booking.IsDeleted, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET title=$1, description=$2, status=$3, start_time=$4, end_time=$5,
            assigned_user_id=$6, client_id=$7, updated_at=NOW()
        WHERE id=$8 AND is_deleted=FALSE`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query,
		booking.Title,
		booking.Description,
		booking.Status,
		booking.StartTime,
		booking.EndTime,
		booking.AssignedUserID,
		booking.ClientID,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1 AND is_deleted=FALSE`
	return scanBooking(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *bookingRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE bookings SET is_deleted=TRUE, updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) ExistsAtStart(ctx context.Context, assignedUserID string, start time.Time, excludeID *string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE assigned_user_id=$1 AND start_time=$2 AND is_deleted=FALSE AND ($3::uuid IS NULL OR id<>$3)
        )`
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx, query, assignedUserID, start, excludeID).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) ExistsOverlapping(ctx context.Context, assignedUserID string, start, end time.Time, excludeID *string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE assigned_user_id=$1 AND start_time < $3 AND end_time > $2
              AND is_deleted=FALSE AND ($4::uuid IS NULL OR id<>$4)
        )`
	var exists bool
	err := querier(ctx, r.pool).QueryRow(ctx, query, assignedUserID, start, end, excludeID).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int, error) {
	conditions := []string{"is_deleted=FALSE"}
	args := []any{}

	appendArg := func(val any) string {
		args = append(args, val)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != nil {
		placeholder := appendArg(*filter.Search)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", placeholder, placeholder))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status="+appendArg(*filter.Status))
	}
	if filter.StartFrom != nil {
		conditions = append(conditions, "start_time >= "+appendArg(*filter.StartFrom))
	}
	if filter.StartTo != nil {
		conditions = append(conditions, "start_time <= "+appendArg(*filter.StartTo))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM bookings WHERE ` + where
	if err := querier(ctx, r.pool).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where +
		` ORDER BY start_time ASC LIMIT ` + appendArg(filter.Limit) +
		` OFFSET ` + appendArg(filter.Offset)

	rows, err := querier(ctx, r.pool).Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *booking)
	}
	return result, total, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.Title,
		&booking.Description,
		&booking.Status,
		&booking.StartTime,
		&booking.EndTime,
		&booking.AssignedUserID,
		&booking.ClientID,
		&booking.IsDeleted,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
