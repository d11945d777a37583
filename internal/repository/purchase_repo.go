package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PurchaseSQLite struct {
	db *sqlx.DB
}

func NewPurchaseSQLite(db *sqlx.DB) *PurchaseSQLite {
	return &PurchaseSQLite{db: db}
}

var _ PurchaseRepo = (*PurchaseSQLite)(nil)

const (
	selectCoinsSQL = `SELECT coins FROM users WHERE user_id = ?`

	// The balance guard repeats the check so a concurrent debit can never
	// take coins below zero.
	debitCoinsSQL = `UPDATE users SET coins = coins - ? WHERE user_id = ? AND coins >= ?`

	insertOwnershipSQL = `INSERT INTO user_stickers (user_id, sticker_id) VALUES (?, ?)`
)

// Purchase debits price from loginID and records ownership of stickerID.
// Either both happen or neither does. Returns the remaining balance.
func (r *PurchaseSQLite) Purchase(ctx context.Context, loginID string, stickerID, price int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin purchase transaction: %w", err)
	}
	defer func() {
		// no-op after Commit
		_ = tx.Rollback()
	}()

	var coins int
	if err := tx.GetContext(ctx, &coins, selectCoinsSQL, loginID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("select coins for %q: %w", loginID, err)
	}
	if coins < price {
		return 0, ErrInsufficientCoins
	}

	res, err := tx.ExecContext(ctx, debitCoinsSQL, price, loginID, price)
	if err != nil {
		return 0, fmt.Errorf("debit %d coins from %q: %w", price, loginID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected debiting %q: %w", loginID, err)
	}
	if n == 0 {
		return 0, ErrInsufficientCoins
	}

	if _, err := tx.ExecContext(ctx, insertOwnershipSQL, loginID, stickerID); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyOwned
		}
		return 0, fmt.Errorf("grant sticker %d to %q: %w", stickerID, loginID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit purchase: %w", err)
	}
	return coins - price, nil
}
