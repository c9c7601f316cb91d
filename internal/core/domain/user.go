package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is internal to the store layer; the service layer folds
// it into ErrInvalidCredentials so callers cannot enumerate usernames.
var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrWeakPassword = errors.New("password does not meet requirements")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrSessionNotFound = errors.New("session not found")

// ActiveSession holds the stored half of a session: the SHA-256 hash of the
// raw bearer token. The raw token itself is never persisted anywhere.
type ActiveSession struct {
	TokenHash string
}

// User models a registered account. Session is nil when the user has no
// active session; a new login replaces it wholesale, invalidating the
// previous token (single active session per user).
type User struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"`
	Session      *ActiveSession `json:"-"`
}

// HasSession reports whether the user currently holds an active session.
func (u *User) HasSession() bool {
	return u.Session != nil && u.Session.TokenHash != ""
}
