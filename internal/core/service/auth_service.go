package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// dummyHash is a valid bcrypt digest of an arbitrary string. When a
// presented identifier resolves to no record, Authenticate still verifies
// the password against this hash so the unknown-user and wrong-password
// paths cost roughly the same (no user enumeration via timing).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration and per-request credential
// verification. It keeps no state between calls.
type AuthService struct {
	repo   ports.UserRepository
	hasher PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

// Register creates an account with the default role set {USER}. The
// plaintext secret exists only for the duration of the hash call; it is
// never persisted or logged.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)

	// Pre-check for a friendly conflict. The unique index on email is
	// what actually serializes concurrent registrations; a race loser
	// gets the same ErrEmailTaken from Create.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate verifies the presented credential and returns the
// resulting identity with a snapshot of the record's role set. The caller
// learns only pass/fail; which stage rejected the credential is never
// revealed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)
	return &domain.Identity{Email: user.Email, Roles: roles}, nil
}
