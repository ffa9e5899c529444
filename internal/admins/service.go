package admins

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/folioworks/folioworks/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service encapsulates admin account logic: credential checks and the
// initial operator seed.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Authenticate verifies the email/password pair against the stored bcrypt
// hash. Unknown emails and bad passwords return the same error so the login
// endpoint can't be used to probe for accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		// burn a comparison so both paths take similar time
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B718ZkBM1tQy0vUMsMMEeR7p7s3W"), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// GetByEmail returns the admin account for email, or nil when absent.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return s.repo.GetByEmail(ctx, email)
}

// EnsureSeed creates the bootstrap operator account when no admins exist
// yet. A no-op when the collection is populated or no seed is configured.
func (s *Service) EnsureSeed(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.repo.Upsert(ctx, &Admin{Email: email, Name: "Administrator", PasswordHash: string(hash)}); err != nil {
		return err
	}
	logger.Infof("seeded initial admin account %s", email)
	return nil
}
