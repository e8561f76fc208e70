package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/work-nest/backoffice/internal/domain"
)

const accountColumns = `id, email, hashed_password, first_name, last_name, role, status,
               profile_picture_url, department_id, reset_password_token, reset_password_expires,
               created_at, updated_at`

// AccountRepository defines persistence access for staff accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Account, error)
	CompleteReset(ctx context.Context, id, hashedPassword string) error
	Activate(ctx context.Context, id, hashedPassword string, firstName, lastName, profilePictureURL *string) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hashedPassword string) error
	UpdateProfilePicture(ctx context.Context, id, url string) error
	CountActiveByDepartment(ctx context.Context, departmentID string) (int, error)
	ReassignDepartment(ctx context.Context, fromDepartmentID, toDepartmentID string) error
	DeactivateByDepartment(ctx context.Context, departmentID string) error
	ListActive(ctx context.Context, departmentID *string) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, hashed_password, first_name, last_name, role, status, profile_picture_url, department_id)
        VALUES (LOWER($1), $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return querier(ctx, r.pool).QueryRow(ctx, query,
		account.Email,
		account.HashedPassword,
		account.FirstName,
		account.LastName,
		account.Role,
		account.Status,
		account.ProfilePictureURL,
		account.DepartmentID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE email=LOWER($1)`
	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query, email))
}

func (r *accountRepository) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	const query = `
        UPDATE accounts SET reset_password_token=$1, reset_password_expires=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, tokenHash, expires, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + `
        FROM accounts WHERE reset_password_token=$1 AND reset_password_expires > $2`
	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query, tokenHash, now))
}

// CompleteReset sets the new password and clears both reset-token fields in
// a single statement so a reset token is usable exactly once.
func (r *accountRepository) CompleteReset(ctx context.Context, id, hashedPassword string) error {
	const query = `
        UPDATE accounts SET hashed_password=$1, reset_password_token=NULL, reset_password_expires=NULL, updated_at=NOW()
        WHERE id=$2`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, hashedPassword, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Activate flips a pending account to ACTIVE with its first password, in one
// statement. Optional profile fields are applied only when provided.
func (r *accountRepository) Activate(ctx context.Context, id, hashedPassword string, firstName, lastName, profilePictureURL *string) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET hashed_password=$1, status=$2,
            first_name=COALESCE($3, first_name),
            last_name=COALESCE($4, last_name),
            profile_picture_url=COALESCE($5, profile_picture_url),
            updated_at=NOW()
        WHERE id=$6
        RETURNING ` + accountColumns
	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query,
		hashedPassword,
		domain.AccountStatusActive,
		firstName,
		lastName,
		profilePictureURL,
		id,
	))
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id, hashedPassword string) error {
	const query = `UPDATE accounts SET hashed_password=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, hashedPassword, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) UpdateProfilePicture(ctx context.Context, id, url string) error {
	const query = `UPDATE accounts SET profile_picture_url=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := querier(ctx, r.pool).Exec(ctx, query, url, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) CountActiveByDepartment(ctx context.Context, departmentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE department_id=$1 AND status=$2`
	var count int
	err := querier(ctx, r.pool).QueryRow(ctx, query, departmentID, domain.AccountStatusActive).Scan(&count)
	return count, err
}

func (r *accountRepository) ReassignDepartment(ctx context.Context, fromDepartmentID, toDepartmentID string) error {
	const query = `
        UPDATE accounts SET department_id=$1, updated_at=NOW()
        WHERE department_id=$2 AND status=$3`
	_, err := querier(ctx, r.pool).Exec(ctx, query, toDepartmentID, fromDepartmentID, domain.AccountStatusActive)
	return err
}

func (r *accountRepository) DeactivateByDepartment(ctx context.Context, departmentID string) error {
	const query = `
        UPDATE accounts SET status=$1, updated_at=NOW()
        WHERE department_id=$2 AND status=$3`
	_, err := querier(ctx, r.pool).Exec(ctx, query, domain.AccountStatusInactive, departmentID, domain.AccountStatusActive)
	return err
}

func (r *accountRepository) ListActive(ctx context.Context, departmentID *string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE status=$1`
	args := []any{domain.AccountStatusActive}
	if departmentID != nil {
		query += ` AND department_id=$2`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY first_name ASC`

	rows, err := querier(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		account, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	return result, rows.Err()
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.HashedPassword,
		&account.FirstName,
		&account.LastName,
		&account.Role,
		&account.Status,
		&account.ProfilePictureURL,
		&account.DepartmentID,
		&account.ResetPasswordToken,
		&account.ResetPasswordExpires,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
