package repository

import (
	"context"
	"errors"
	"strings"

	"sticker_market/internal/models"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Errors reported by the store for conditions callers act on.
var (
	ErrDuplicateUser     = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrAlreadyOwned      = errors.New("sticker already owned")
)

type Authorization interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)
	UpdatePassword(ctx context.Context, loginID, hash string) error
}

type StickerRepo interface {
	Create(ctx context.Context, s models.Sticker) (int, error)
	GetByID(ctx context.Context, id int) (*models.Sticker, error)
	List(ctx context.Context) ([]models.Sticker, error)
	ListOwnedBy(ctx context.Context, loginID string) ([]models.Sticker, error)
}

// PurchaseRepo performs the debit and ownership grant as one transaction.
type PurchaseRepo interface {
	Purchase(ctx context.Context, loginID string, stickerID, price int) (int, error)
}

type Repository struct {
	Auth     Authorization
	Stickers StickerRepo
	Purchase PurchaseRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Stickers: NewStickerSQLite(db),
		Purchase: NewPurchaseSQLite(db),
	}
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
