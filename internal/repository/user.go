package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ashrafbing/crystalloom/internal/domain/user"
)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, personal_info, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, '{}'::jsonb), $6)`

	getUserByIDSQL = `SELECT id, name, email, password_hash, personal_info, created_at
		FROM users WHERE id = $1`

	getUserByEmailSQL = `SELECT id, name, email, password_hash, personal_info, created_at
		FROM users WHERE email = $1`

	updatePersonalInfoSQL = `UPDATE users SET personal_info = $2 WHERE id = $1`

	updatePasswordSQL = `UPDATE users SET password_hash = $2 WHERE email = $1`
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. A duplicate email maps to user.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, u.PersonalInfo, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("creating user %q: %w", u.Email, err)
	}
	return nil
}

// GetByID returns the user with the given ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	rows, err := r.pool.Query(ctx, getUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return collectUser(rows, id.String())
}

// GetByEmail returns the user with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, getUserByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", email, err)
	}
	return collectUser(rows, email)
}

// UpdatePersonalInfo replaces the personal_info document for the user.
func (r *UserRepository) UpdatePersonalInfo(ctx context.Context, id uuid.UUID, info map[string]string) error {
	tag, err := r.pool.Exec(ctx, updatePersonalInfoSQL, id, info)
	if err != nil {
		return fmt.Errorf("updating personal info for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash for the user with the given email.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, updatePasswordSQL, email, passwordHash)
	if err != nil {
		return fmt.Errorf("updating password for %q: %w", email, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func collectUser(rows pgx.Rows, key string) (*user.User, error) {
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %q: %w", key, err)
	}
	return &u, nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PersonalInfo, &u.CreatedAt)
	return u, err
}
