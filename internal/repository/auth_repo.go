package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sticker_market/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (name, user_id, password, coins) VALUES (?, ?, ?, ?)`
	selectUserByLoginSQL = `SELECT id, name, user_id, password, coins FROM users WHERE user_id = ?`
	updatePasswordSQL    = `UPDATE users SET password = ? WHERE user_id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Name, u.LoginID, u.PasswordHash, u.Coins)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.LoginID, ErrDuplicateUser)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.LoginID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.LoginID, err)
	}
	return int(lastID), nil
}

// GetByLoginID fetches a user by login handle. Returns (nil, nil) if not found.
func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, selectUserByLoginSQL, loginID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", loginID, err)
	}
	return &u, nil
}

// UpdatePassword overwrites the stored hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, loginID, hash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, hash, loginID)
	if err != nil {
		return fmt.Errorf("update password for %q: %w", loginID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q: %w", loginID, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
