package ports

import (
	"context"

	"github.com/pulsefeed/content-service/internal/core/domain"
)

// AuthService implements registration and the session token lifecycle.
type AuthService interface {
	// Register creates an account after checking the confirmation,
	// the password policy, and username uniqueness, in that order.
	Register(ctx context.Context, username, password, confirm string) (*domain.User, error)
	// Login verifies credentials and returns the raw session token to be
	// delivered to the client. Failures are uniformly
	// domain.ErrInvalidCredentials regardless of which factor failed.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Resolve maps a presented raw token to its user, or returns
	// domain.ErrSessionNotFound. This is the sole authentication check
	// used by protected operations.
	Resolve(ctx context.Context, rawToken string) (*domain.User, error)
	// Logout ends the user's session. Idempotent.
	Logout(ctx context.Context, username string) error
}
