package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/work-nest/backoffice/internal/domain"
)

const departmentColumns = `id, name, hod_id, is_deleted, deleted_at, created_at, updated_at`

// DepartmentRepository manages department persistence. Reads filter on
// is_deleted so retired departments (and their stale HOD pointers) stay inert.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	FindActiveByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	SearchByName(ctx context.Context, query string) ([]domain.Department, error)
	UpdateName(ctx context.Context, id, name string) error
	SetHOD(ctx context.Context, id string, userID *string) error
	SoftDelete(ctx context.Context, id string) error
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, hod_id)
        VALUES ($1,$2)
        RETURNING id, is_deleted, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		dept.Name,
		dept.HodID,
	).Scan(&dept.ID, &dept.IsDeleted, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `SELECT ` + departmentColumns + ` FROM departments WHERE id=$1 AND is_deleted=FALSE`
	return scanDepartment(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *departmentRepository) FindActiveByName(ctx context.Context, name string) (*domain.Department, error) {
	const query = `SELECT ` + departmentColumns + ` FROM departments WHERE LOWER(name)=LOWER($1) AND is_deleted=FALSE`
	return scanDepartment(querier(ctx, r.pool).QueryRow(ctx, query, name))
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT ` + departmentColumns + ` FROM departments WHERE is_deleted=FALSE ORDER BY created_at ASC`
	return r.queryMany(ctx, query)
}

func (r *departmentRepository) SearchByName(ctx context.Context, search string) ([]domain.Department, error) {
	const query = `SELECT ` + departmentColumns + `
        FROM departments WHERE is_deleted=FALSE AND name ILIKE '%' || $1 || '%'
        ORDER BY name ASC`
	return r.queryMany(ctx, query, search)
}

func (r *departmentRepository) UpdateName(ctx context.Context, id, name string) error {
	const query = `UPDATE departments SET name=$1, updated_at=NOW() WHERE id=$2 AND is_deleted=FALSE`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) SetHOD(ctx context.Context, id string, userID *string) error {
	const query = `UPDATE departments SET hod_id=$1, updated_at=NOW() WHERE id=$2 AND is_deleted=FALSE`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE departments SET is_deleted=TRUE, deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND is_deleted=FALSE`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Department, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dept)
	}
	return result, rows.Err()
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var dept domain.Department
	if err := row.Scan(
		&dept.ID,
		&dept.Name,
		&dept.HodID,
		&dept.IsDeleted,
		&dept.DeletedAt,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}
