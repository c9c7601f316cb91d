package ports

import (
	"context"

	"github.com/pulsefeed/content-service/internal/core/domain"
)

// CredentialRepository persists user records. Uniqueness of usernames is
// enforced by the store (unique index); a conflicting insert surfaces as
// domain.ErrUsernameTaken.
type CredentialRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindBySessionTokenHash returns the user whose active session matches
	// the given token hash, or domain.ErrSessionNotFound.
	FindBySessionTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	// SetSessionTokenHash atomically replaces the user's stored session
	// hash, overwriting any previous session.
	SetSessionTokenHash(ctx context.Context, username, tokenHash string) error
	// ClearSessionTokenHash atomically removes the stored session hash.
	// Idempotent: clearing an absent session is not an error.
	ClearSessionTokenHash(ctx context.Context, username string) error
}

// SessionRegistry tracks server-side session lifetimes. Entries expire on
// their own after the TTL given at creation; Revoke removes one eagerly.
type SessionRegistry interface {
	Track(ctx context.Context, tokenHash string) error
	IsLive(ctx context.Context, tokenHash string) (bool, error)
	Revoke(ctx context.Context, tokenHash string) error
}
