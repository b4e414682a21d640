package user_test

import (
	"database/sql"
	"testing"

	"motoshop/pkg/user"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		role INTEGER NOT NULL DEFAULT 0
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestMySQLRepo_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := user.NewMySQLRepo(db)

	_user_ := &user.User{
		ID:       "user123",
		Account:  "rider42",
		Email:    "rider42@example.com",
		Password: "hashed_pass",
		Avatar:   "http://example.com/a.png",
		Role:     user.RoleUser,
	}
	err := repo.Create(_user_)
	assert.NoError(t, err)

	// same account again
	err = repo.Create(&user.User{
		ID:      "user124",
		Account: "rider42",
		Email:   "other@example.com",
	})
	assert.Error(t, err)

	u, err := repo.FindByAccount("rider42")
	assert.NoError(t, err)
	assert.Equal(t, "user123", u.ID)
	assert.Equal(t, "rider42@example.com", u.Email)

	u, err = repo.FindByID("user123")
	assert.NoError(t, err)
	assert.Equal(t, "rider42", u.Account)

	u, err = repo.FindByAccount("ghost")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	u, err = repo.FindByID("nope")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestMySQLRepo_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := user.NewMySQLRepo(db)

	assert.NoError(t, repo.Create(&user.User{
		ID:       "user123",
		Account:  "rider42",
		Email:    "rider42@example.com",
		Password: "old_hash",
	}))

	assert.NoError(t, repo.UpdatePassword("user123", "new_hash"))

	u, err := repo.FindByID("user123")
	assert.NoError(t, err)
	assert.Equal(t, "new_hash", u.Password)

	assert.ErrorIs(t, repo.UpdatePassword("ghost", "x"), user.ErrUserNotFound)
}
