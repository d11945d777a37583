package service

import "errors"

// Domain errors. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("missing or malformed input")
	ErrUnauthenticated    = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrStickerNotFound    = errors.New("sticker not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientFunds  = errors.New("not enough coins")
	ErrFreeSticker        = errors.New("free stickers cannot be purchased")
	ErrAlreadyOwned       = errors.New("sticker already owned")
)
