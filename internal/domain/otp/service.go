package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ashrafbing/crystalloom/internal/domain/user"
)

// TTL is how long an issued code remains valid.
const TTL = 10 * time.Minute

var (
	// ErrInvalidOrExpired is returned when no code is stored for the email,
	// the code does not match exactly, or the code has expired. The cases
	// are indistinguishable to the caller.
	ErrInvalidOrExpired = errors.New("invalid or expired code")
	// ErrSendFailed is returned when the code email could not be delivered.
	// Unlike order confirmations this is fatal: the caller must know the
	// code never arrived.
	ErrSendFailed = errors.New("sending reset code failed")
)

// Mailer delivers the reset-code email synchronously.
type Mailer interface {
	SendResetCode(ctx context.Context, to, code string) error
}

// Service implements the request / verify / reset flow.
type Service struct {
	users  user.Repository
	store  *Store
	mailer Mailer
	now    func() time.Time
}

// NewService creates an otp Service around the given store.
func NewService(users user.Repository, store *Store, mailer Mailer) *Service {
	return &Service{
		users:  users,
		store:  store,
		mailer: mailer,
		now:    time.Now,
	}
}

// RequestCode issues a fresh 6-digit code for the email, superseding any
// prior code, and mails it. The code is only stored if the user exists;
// a mail delivery failure surfaces as ErrSendFailed.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return errors.Wrap(err, "lookup user")
	}

	code, err := generateCode()
	if err != nil {
		return errors.Wrap(err, "generate code")
	}

	s.store.put(email, code, s.now().Add(TTL))

	if err := s.mailer.SendResetCode(ctx, email, code); err != nil {
		return errors.Wrap(ErrSendFailed, err.Error())
	}

	return nil
}

// VerifyCode checks that a stored code exists for the email, matches exactly,
// and has not expired. The check does not consume the code: the same code can
// be verified repeatedly until ResetPassword consumes it.
func (s *Service) VerifyCode(_ context.Context, email, code string) error {
	return s.validate(email, code)
}

// ResetPassword re-validates the code (a prior VerifyCode is not trusted —
// no session bridges the two calls), persists the bcrypt-hashed new password,
// and deletes the code. On any failure the stored code is left untouched.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.validate(email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return errors.Wrap(err, "update password")
	}

	s.store.delete(email)
	return nil
}

func (s *Service) validate(email, code string) error {
	e, ok := s.store.get(email)
	if !ok || e.code != code || s.now().After(e.expiresAt) {
		return ErrInvalidOrExpired
	}
	return nil
}

// generateCode returns a uniformly random 6-digit numeric string.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
