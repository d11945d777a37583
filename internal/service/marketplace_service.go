package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sticker_market/internal/models"
	"sticker_market/internal/repository"
	"sticker_market/internal/storage"
)

type MarketplaceService struct {
	users     repository.Authorization
	stickers  repository.StickerRepo
	purchases repository.PurchaseRepo
	images    storage.ImageStore
	now       func() time.Time
}

func NewMarketplaceService(
	users repository.Authorization,
	stickers repository.StickerRepo,
	purchases repository.PurchaseRepo,
	images storage.ImageStore,
) *MarketplaceService {
	return &MarketplaceService{
		users:     users,
		stickers:  stickers,
		purchases: purchases,
		images:    images,
		now:       time.Now,
	}
}

// UploadSticker stores the image and records a sticker owned by the uploader.
func (s *MarketplaceService) UploadSticker(ctx context.Context, id models.Identity, in UploadInput) (int, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Content == nil || in.Price == nil || *in.Price < 0 {
		return 0, ErrValidation
	}

	ref, err := s.images.Save(ctx, storage.ObjectName(in.Filename, s.now()), in.Content, in.ContentType)
	if err != nil {
		return 0, fmt.Errorf("store sticker image: %w", err)
	}

	stickerID, err := s.stickers.Create(ctx, models.Sticker{
		Name:   name,
		Image:  ref,
		UserID: id.LoginID,
		Price:  *in.Price,
	})
	if err != nil {
		// don't leave an orphaned image behind
		if rmErr := s.images.Remove(ctx, ref); rmErr != nil {
			return 0, errors.Join(err, rmErr)
		}
		return 0, err
	}
	return stickerID, nil
}

func (s *MarketplaceService) ListStickers(ctx context.Context) ([]models.Sticker, error) {
	return s.stickers.List(ctx)
}

func (s *MarketplaceService) ListUserStickers(ctx context.Context, id models.Identity) ([]models.Sticker, error) {
	return s.stickers.ListOwnedBy(ctx, id.LoginID)
}

// Purchase buys stickerID for the caller. Free stickers are rejected.
// The balance check, debit and ownership grant commit or roll back together.
func (s *MarketplaceService) Purchase(ctx context.Context, id models.Identity, stickerID int) error {
	if stickerID <= 0 {
		return ErrValidation
	}

	sticker, err := s.stickers.GetByID(ctx, stickerID)
	if err != nil {
		return err
	}
	if sticker == nil {
		return ErrStickerNotFound
	}
	if sticker.Price == 0 {
		return ErrFreeSticker
	}

	_, err = s.purchases.Purchase(ctx, id.LoginID, sticker.ID, sticker.Price)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrInsufficientCoins):
		return ErrInsufficientFunds
	case errors.Is(err, repository.ErrAlreadyOwned):
		return ErrAlreadyOwned
	default:
		return err
	}
}

func (s *MarketplaceService) GetUserInfo(ctx context.Context, id models.Identity) (models.UserSummary, error) {
	u, err := s.users.GetByLoginID(ctx, id.LoginID)
	if err != nil {
		return models.UserSummary{}, err
	}
	if u == nil {
		return models.UserSummary{}, ErrUserNotFound
	}
	return u.Summary(), nil
}
