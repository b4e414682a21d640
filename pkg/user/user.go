package user

import "errors"

const (
	RoleUser  = 0
	RoleAdmin = 1
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID       string `json:"id"`
	Account  string `json:"account"`
	Email    string `json:"email"`
	Password string `json:"-" bson:"-"`
	Avatar   string `json:"avatar"`
	Role     int    `json:"role"`
}

type Repository interface {
	Create(user *User) error
	FindByAccount(account string) (*User, error)
	FindByID(id string) (*User, error)
	UpdatePassword(id, hash string) error
}
