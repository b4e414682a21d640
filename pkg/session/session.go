package session

import (
	"errors"
	"time"
)

// TokenTTL is the validity window of an issued token.
const TokenTTL = 7 * 24 * time.Hour

var ErrTokenNotFound = errors.New("token not found")

// Session is one logged-in device. A user may hold any number of them
// at once; the row id stays stable across token rotation.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Repository interface {
	Create(s *Session) error
	// Replace swaps the stored token of one session for a fresh one,
	// matching the old token exactly. Returns ErrTokenNotFound when no
	// session of that user currently holds oldToken.
	Replace(userID, sessionID, oldToken, newToken string, expiresAt time.Time) error
	// Delete removes the session holding token. The bool reports whether
	// anything was removed; absence is not an error.
	Delete(userID, token string) (bool, error)
	IsValid(userID, sessionID, token string) (bool, error)
	DeleteAll(userID string) error
}
