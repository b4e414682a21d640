package cart

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Adjust(userID, productID string, delta int) (newQuantity int, existed bool, err error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var quantity int
	err = tx.QueryRow(
		"SELECT quantity FROM cart_lines WHERE user_id = ? AND product_id = ?",
		userID, productID,
	).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.Commit()
		return 0, false, err
	}
	if err != nil {
		return 0, false, err
	}

	newQuantity = quantity + delta
	if newQuantity <= 0 {
		_, err = tx.Exec(
			"DELETE FROM cart_lines WHERE user_id = ? AND product_id = ?",
			userID, productID,
		)
		newQuantity = 0
	} else {
		_, err = tx.Exec(
			"UPDATE cart_lines SET quantity = ? WHERE user_id = ? AND product_id = ?",
			newQuantity, userID, productID,
		)
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to adjust cart line: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, false, err
	}
	return newQuantity, true, nil
}

func (r *MySQLRepo) Insert(userID, productID string, quantity int) error {
	_, err := r.DB.Exec(
		"INSERT INTO cart_lines (user_id, product_id, quantity, created_at) VALUES (?, ?, ?, ?)",
		userID, productID, quantity, time.Now(),
	)
	return err
}

func (r *MySQLRepo) Delete(userID, productID string) (bool, error) {
	res, err := r.DB.Exec(
		"DELETE FROM cart_lines WHERE user_id = ? AND product_id = ?",
		userID, productID,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *MySQLRepo) List(userID string) ([]Line, error) {
	rows, err := r.DB.Query(
		"SELECT product_id, quantity FROM cart_lines WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (r *MySQLRepo) Total(userID string) (int, error) {
	var total int
	err := r.DB.QueryRow(
		"SELECT COALESCE(SUM(quantity), 0) FROM cart_lines WHERE user_id = ?",
		userID,
	).Scan(&total)
	return total, err
}

func (r *MySQLRepo) Clear(userID string) error {
	_, err := r.DB.Exec(
		"DELETE FROM cart_lines WHERE user_id = ?",
		userID,
	)
	return err
}
