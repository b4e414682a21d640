package session

import (
	"database/sql"
	"time"
)

type MySQLSessionRepo struct {
	DB *sql.DB
}

func NewMySQLSessionRepo(db *sql.DB) *MySQLSessionRepo {
	return &MySQLSessionRepo{DB: db}
}

func (r *MySQLSessionRepo) Create(s *Session) error {
	_, err := r.DB.Exec(`
		INSERT INTO sessions (id, user_id, token, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.Token, s.CreatedAt, s.ExpiresAt)

	return err
}

/* одна CAS-команда: параллельные rotate/logout того же юзера
не могут потерять чужое обновление */
func (r *MySQLSessionRepo) Replace(userID, sessionID, oldToken, newToken string, expiresAt time.Time) error {
	res, err := r.DB.Exec(`
		UPDATE sessions SET token = ?, expires_at = ?
		WHERE user_id = ? AND id = ? AND token = ?
	`, newToken, expiresAt, userID, sessionID, oldToken)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *MySQLSessionRepo) Delete(userID, token string) (bool, error) {
	res, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ? AND token = ?
	`, userID, token)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *MySQLSessionRepo) IsValid(userID, sessionID, token string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE id = ? AND user_id = ? AND token = ? AND expires_at > ?
		)
	`, sessionID, userID, token, time.Now().UTC()).Scan(&exists)
	return exists, err
}

func (r *MySQLSessionRepo) DeleteAll(userID string) error {
	_, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ?
	`, userID)
	return err
}
