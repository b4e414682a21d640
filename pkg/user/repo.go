package user

import (
	"database/sql"
	"errors"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(user *User) error {
	_, err := r.DB.Exec(
		"INSERT INTO users (id, account, email, password, avatar, role) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Account, user.Email, user.Password, user.Avatar, user.Role,
	)
	if err != nil {
		return err
	}
	return nil
}

func (r *MySQLRepo) FindByAccount(account string) (*User, error) {
	var u User
	err := r.DB.QueryRow(
		"SELECT id, account, email, password, avatar, role FROM users WHERE account = ?",
		account,
	).Scan(&u.ID, &u.Account, &u.Email, &u.Password, &u.Avatar, &u.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *MySQLRepo) FindByID(id string) (*User, error) {
	var u User
	err := r.DB.QueryRow(
		"SELECT id, account, email, password, avatar, role FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Account, &u.Email, &u.Password, &u.Avatar, &u.Role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *MySQLRepo) UpdatePassword(id, hash string) error {
	res, err := r.DB.Exec(
		"UPDATE users SET password = ? WHERE id = ?",
		hash, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
