package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"motoshop/pkg/generator"
	"motoshop/pkg/session"
)

type ServiceInterface interface {
	Register(account, email, password string) (*User, error)
	Login(account, password string) (*User, string, error)
	Logout(userID, token string) error
	Extend(userID, account string, role int, sessionID, token string) (string, error)
	Profile(userID string) (*User, error)
	ChangePassword(userID, password string) error
}

type Service struct {
	Repo    Repository
	Session session.ManagerInterface
}

func NewService(repo Repository, session session.ManagerInterface) *Service {
	return &Service{Repo: repo, Session: session}
}

func (s *Service) Register(account, email, password string) (*User, error) {
	exist, err := s.Repo.FindByAccount(account)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if exist != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %s", err)
	}

	userID, err := generator.GenerateRandomID(24)
	if err != nil {
		return nil, fmt.Errorf("UserID gen error: %s", err)
	}

	user := &User{
		ID:       userID,
		Account:  account,
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   defaultAvatar(account),
		Role:     RoleUser,
	}

	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and issues a fresh device session. The
// returned token is one of possibly many valid tokens of this user.
func (s *Service) Login(account, password string) (*User, string, error) {
	user, err := s.Repo.FindByAccount(account)
	if err != nil {
		return nil, "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Session.Issue(user.ID, user.Account, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %s", err)
	}

	return user, token, nil
}

func (s *Service) Logout(userID, token string) error {
	return s.Session.Revoke(userID, token)
}

func (s *Service) Extend(userID, account string, role int, sessionID, token string) (string, error) {
	return s.Session.Rotate(userID, account, role, sessionID, token)
}

func (s *Service) Profile(userID string) (*User, error) {
	return s.Repo.FindByID(userID)
}

// ChangePassword re-hashes only when the password actually changed,
// comparing against the stored hash before writing.
func (s *Service) ChangePassword(userID, password string) error {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password error: %s", err)
	}

	if err := s.Repo.UpdatePassword(userID, string(hashedPassword)); err != nil {
		return err
	}

	/* после смены пароля все выданные токены отзываются */
	return s.Session.RevokeAll(userID)
}

func defaultAvatar(account string) string {
	return fmt.Sprintf("https://source.boringavatars.com/beam/250/%s?colors=264653,2a9d8f,e9c46a,f4a261,e76f51", account)
}
