package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulsefeed/content-service/internal/core/domain"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

// tokenBytes is the entropy of a raw session token (128 bits, hex-encoded
// to 32 characters before delivery).
const tokenBytes = 16

// AuthService implements registration, login, and the session token
// lifecycle. Raw tokens are handed to the caller once and only their
// SHA-256 hash is ever stored; the registry enforces server-side expiry.
type AuthService struct {
	repo     ports.CredentialRepository
	sessions ports.SessionRegistry
	logger   zerolog.Logger
}

func NewAuthService(repo ports.CredentialRepository, sessions ports.SessionRegistry, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if password != confirm {
		return nil, domain.ErrPasswordMismatch
	}
	if !domain.ValidPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Unknown user and wrong password must be indistinguishable to
		// the caller so usernames cannot be enumerated.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	rawToken, err := s.createSession(ctx, user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Msg("session created")
	return rawToken, user, nil
}

// createSession generates a fresh random token, stores its hash on the user
// record (overwriting any prior session), and tracks it in the registry.
// The previous token, if any, is revoked eagerly.
func (s *AuthService) createSession(ctx context.Context, user *domain.User) (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	rawToken := hex.EncodeToString(b)
	tokenHash := hashToken(rawToken)

	if err := s.repo.SetSessionTokenHash(ctx, user.Username, tokenHash); err != nil {
		return "", err
	}
	if user.HasSession() {
		if err := s.sessions.Revoke(ctx, user.Session.TokenHash); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("failed to revoke previous session")
		}
	}
	if err := s.sessions.Track(ctx, tokenHash); err != nil {
		return "", err
	}

	user.Session = &domain.ActiveSession{TokenHash: tokenHash}
	return rawToken, nil
}

func (s *AuthService) Resolve(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	tokenHash := hashToken(rawToken)
	live, err := s.sessions.IsLive(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, domain.ErrSessionNotFound
	}

	return s.repo.FindBySessionTokenHash(ctx, tokenHash)
}

func (s *AuthService) Logout(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	if user.HasSession() {
		if err := s.sessions.Revoke(ctx, user.Session.TokenHash); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to revoke session")
		}
	}
	if err := s.repo.ClearSessionTokenHash(ctx, username); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("session invalidated")
	return nil
}

func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
