package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/work-nest/backoffice/internal/domain"
)

const clientColumns = `id, name, email, phone, is_deleted, created_at, updated_at`

// ClientRepository manages client record persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, search *string, limit, offset int) ([]domain.Client, int, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository constructs repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, email, phone)
        VALUES ($1, LOWER($2), $3)
        RETURNING id, is_deleted, created_at, updated_at`
	return querier(ctx, r.pool).QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
	).Scan(&client.ID, &client.IsDeleted, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE id=$1 AND is_deleted=FALSE`
	return scanClient(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *clientRepository) List(ctx context.Context, search *string, limit, offset int) ([]domain.Client, int, error) {
	where := `is_deleted=FALSE`
	args := []any{}
	if search != nil {
		args = append(args, *search)
		where += ` AND (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`
	}

	var total int
	if err := querier(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + where + ` ORDER BY name ASC`
	if search != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *client)
	}
	return result, total, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.IsDeleted,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}
