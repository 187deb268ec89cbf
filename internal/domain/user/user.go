package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Sentinel errors for account operations.
var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are indistinguishable
	// to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered storefront account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	PersonalInfo map[string]string
	CreatedAt    time.Time
}

// Repository defines persistence operations for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePersonalInfo(ctx context.Context, id uuid.UUID, info map[string]string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
