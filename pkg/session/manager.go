package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"motoshop/pkg/claims"
	"motoshop/pkg/retry"
)

type ManagerInterface interface {
	Issue(userID, account string, role int) (string, error)
	Rotate(userID, account string, role int, sessionID, presented string) (string, error)
	Revoke(userID, presented string) error
	RevokeAll(userID string) error
}

// Manager signs bearer tokens and keeps the per-device session rows
// they must stay listed in to remain valid.
type Manager struct {
	Repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{Repo: repo}
}

func (m *Manager) Issue(userID, account string, role int) (string, error) {
	now := time.Now()
	expires := now.Add(TokenTTL)
	sessionID := uuid.NewString()

	token, err := m.sign(userID, account, role, sessionID, now, expires)
	if err != nil {
		return "", fmt.Errorf("token signing: %w", err)
	}

	s := &Session{
		ID:        sessionID,
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := retry.Do(func() error { return m.Repo.Create(s) }); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return token, nil
}

// Rotate replaces the presented token with a fresh one in the same
// session slot. Other sessions of the user are untouched.
func (m *Manager) Rotate(userID, account string, role int, sessionID, presented string) (string, error) {
	now := time.Now()
	expires := now.Add(TokenTTL)

	token, err := m.sign(userID, account, role, sessionID, now, expires)
	if err != nil {
		return "", fmt.Errorf("token signing: %w", err)
	}

	err = retry.Do(func() error {
		err := m.Repo.Replace(userID, sessionID, presented, token, expires)
		if errors.Is(err, ErrTokenNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (m *Manager) Revoke(userID, presented string) error {
	/* повторный logout того же токена — no-op */
	return retry.Do(func() error {
		_, err := m.Repo.Delete(userID, presented)
		return err
	})
}

func (m *Manager) RevokeAll(userID string) error {
	return retry.Do(func() error { return m.Repo.DeleteAll(userID) })
}

func (m *Manager) sign(userID, account string, role int, sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	c := &claims.Claims{SessionID: sessionID}
	c.User.ID = userID
	c.User.Account = account
	c.User.Role = role
	c.IssuedAt = issuedAt.UTC().Unix()
	c.ExpiresAt = expiresAt.UTC().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
