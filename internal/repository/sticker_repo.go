package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sticker_market/internal/models"

	"github.com/jmoiron/sqlx"
)

type StickerSQLite struct {
	db *sqlx.DB
}

func NewStickerSQLite(db *sqlx.DB) *StickerSQLite {
	return &StickerSQLite{db: db}
}

var _ StickerRepo = (*StickerSQLite)(nil)

const (
	insertStickerSQL = `INSERT INTO stickers (name, image, user_id, price) VALUES (?, ?, ?, ?)`

	selectStickerByIDSQL = `SELECT id, name, image, user_id, price FROM stickers WHERE id = ?`

	selectStickersSQL = `SELECT id, name, image, user_id, price FROM stickers ORDER BY id`

	selectOwnedStickersSQL = `
		SELECT s.id, s.name, s.image, s.user_id, s.price
		FROM stickers s
		INNER JOIN user_stickers us ON s.id = us.sticker_id
		WHERE us.user_id = ?
		ORDER BY us.id
	`
)

func (r *StickerSQLite) Create(ctx context.Context, s models.Sticker) (int, error) {
	res, err := r.db.ExecContext(ctx, insertStickerSQL, s.Name, s.Image, s.UserID, s.Price)
	if err != nil {
		return 0, fmt.Errorf("insert sticker %q: %w", s.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for sticker %q: %w", s.Name, err)
	}
	return int(lastID), nil
}

// GetByID returns (nil, nil) when the sticker does not exist.
func (r *StickerSQLite) GetByID(ctx context.Context, id int) (*models.Sticker, error) {
	var s models.Sticker
	if err := r.db.GetContext(ctx, &s, selectStickerByIDSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select sticker %d: %w", id, err)
	}
	return &s, nil
}

func (r *StickerSQLite) List(ctx context.Context) ([]models.Sticker, error) {
	out := make([]models.Sticker, 0)
	if err := r.db.SelectContext(ctx, &out, selectStickersSQL); err != nil {
		return nil, fmt.Errorf("select stickers: %w", err)
	}
	return out, nil
}

// ListOwnedBy returns the stickers loginID has purchased, in purchase order.
func (r *StickerSQLite) ListOwnedBy(ctx context.Context, loginID string) ([]models.Sticker, error) {
	out := make([]models.Sticker, 0)
	if err := r.db.SelectContext(ctx, &out, selectOwnedStickersSQL, loginID); err != nil {
		return nil, fmt.Errorf("select stickers owned by %q: %w", loginID, err)
	}
	return out, nil
}
