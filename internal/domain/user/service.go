package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AnalyticsSink receives flattened signup records. Appends are best-effort:
// the service logs failures and continues.
type AnalyticsSink interface {
	AppendSignup(ctx context.Context, name, email string, at time.Time) error
}

// Service implements account registration, login, and profile updates.
type Service struct {
	users     Repository
	analytics AnalyticsSink
	now       func() time.Time
}

// NewService creates an account Service.
func NewService(users Repository, analytics AnalyticsSink) *Service {
	return &Service{
		users:     users,
		analytics: analytics,
		now:       time.Now,
	}
}

// Register creates a new account with a bcrypt-hashed password and appends a
// best-effort signup record to the analytics sink.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check existing email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	// Signup bookkeeping must never fail the registration.
	if err := s.analytics.AppendSignup(ctx, name, email, u.CreatedAt); err != nil {
		zctx.From(ctx).Warn("signup analytics append failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, nil
}

// Login verifies the email/password pair and returns the matching user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// UpdatePersonalInfo replaces the user's personal info document.
func (s *Service) UpdatePersonalInfo(ctx context.Context, id uuid.UUID, info map[string]string) error {
	if err := s.users.UpdatePersonalInfo(ctx, id, info); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "update personal info")
	}
	return nil
}
