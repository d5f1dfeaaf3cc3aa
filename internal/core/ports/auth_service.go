package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// RegisterInput carries the self-service registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService covers credential verification and account registration.
type AuthService interface {
	// Register creates an account with the default role set. A taken
	// email yields domain.ErrEmailTaken with no partial mutation.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Authenticate verifies email+password and returns the resulting
	// identity. Every rejection, regardless of which stage failed, is
	// domain.ErrInvalidCredentials; store outages pass through as
	// domain.ErrStoreUnavailable. Read-only.
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
}
