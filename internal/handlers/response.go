package handlers

import (
	"errors"
	"net/http"

	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. Internal error detail is logged, never returned.
const (
	msgServerError     = "server error"
	msgMissingFields   = "please fill in all fields"
	msgMissingSticker  = "sticker name, image and price are required"
	msgMissingID       = "stickerId is required"
	msgMissingToken    = "missing token"
	msgInvalidToken    = "invalid or expired token"
	msgUserNotFound    = "user not found"
	msgStickerNotFound = "sticker not found"
	msgDuplicateUser   = "user already exists"
	msgBadPassword     = "password does not match"
	msgNoCoins         = "not enough coins"
	msgFreeSticker     = "free stickers cannot be purchased"
	msgAlreadyOwned    = "sticker already owned"
)

type errorMapping struct {
	err    error
	status int
	msg    string
}

// errorTable maps domain errors to status codes. Order matters only for
// errors that wrap more than one sentinel, which none currently do.
var errorTable = []errorMapping{
	{service.ErrValidation, http.StatusBadRequest, msgMissingFields},
	{service.ErrUnauthenticated, http.StatusUnauthorized, msgMissingToken},
	{service.ErrInvalidToken, http.StatusForbidden, msgInvalidToken},
	{service.ErrUserNotFound, http.StatusNotFound, msgUserNotFound},
	{service.ErrStickerNotFound, http.StatusNotFound, msgStickerNotFound},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, msgBadPassword},
	{service.ErrInsufficientFunds, http.StatusBadRequest, msgNoCoins},
	{service.ErrFreeSticker, http.StatusBadRequest, msgFreeSticker},
	{service.ErrAlreadyOwned, http.StatusBadRequest, msgAlreadyOwned},
	// kept at 500 for compatibility with existing clients
	{service.ErrDuplicateUser, http.StatusInternalServerError, msgDuplicateUser},
}

// statusFor returns the HTTP status and client message for err.
// Unknown errors are store failures: 500 with a generic message.
func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, msgServerError
}

func ok(c *gin.Context, status int, extra gin.H) {
	resp := gin.H{"isSuccess": true}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(status, resp)
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"isSuccess": false, "message": msg})
}

// respondError logs unexpected failures and writes the error envelope.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status, msg := statusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", status}, kv...)
		if status >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	fail(c, status, msg)
}
