package service

import (
	"context"
	"io"

	"sticker_market/internal/models"
	"sticker_market/internal/repository"
	"sticker_market/internal/storage"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, loginID, password string) (LoginResult, error)
	VerifyToken(token string) (models.Identity, error)
	ChangePassword(ctx context.Context, id models.Identity, currentPassword, newPassword string) error
}

// Marketplace covers stickers, purchases and account balance.
type Marketplace interface {
	UploadSticker(ctx context.Context, id models.Identity, in UploadInput) (int, error)
	ListStickers(ctx context.Context) ([]models.Sticker, error)
	ListUserStickers(ctx context.Context, id models.Identity) ([]models.Sticker, error)
	Purchase(ctx context.Context, id models.Identity, stickerID int) error
	GetUserInfo(ctx context.Context, id models.Identity) (models.UserSummary, error)
}

type RegisterInput struct {
	Name     string
	LoginID  string
	Password string
}

type LoginResult struct {
	Token string
	User  models.UserSummary
}

// UploadInput carries a multipart upload. Price is nil when the field was absent.
type UploadInput struct {
	Name        string
	Price       *int
	Filename    string
	ContentType string
	Content     io.Reader
}

type Service struct {
	Authorization
	Marketplace
}

func NewService(repos *repository.Repository, images storage.ImageStore, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.Auth),
		Marketplace:   NewMarketplaceService(repos.Auth, repos.Stickers, repos.Purchase, images),
	}
}

type Options struct {
	Auth AuthOptions
}
