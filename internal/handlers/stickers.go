package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"sticker_market/internal/metrics"
	"sticker_market/internal/models"
	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
)

type purchaseRequest struct {
	StickerID int `json:"stickerId" form:"stickerId"`
}

// @Summary      Upload a sticker
// @Tags         stickers
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name   formData  string  true  "sticker name"
// @Param        price  formData  int     true  "price in coins"
// @Param        image  formData  file    true  "sticker image"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      403    {object}  map[string]interface{}
// @Router       /api/upload-sticker [post]
func (h *Handler) uploadSticker(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "upload_failed", err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	file, err := c.FormFile("image")
	if err != nil {
		if h.log != nil {
			h.log.Infow("upload_bad_request", "userId", id.LoginID, "err", err)
		}
		fail(c, http.StatusBadRequest, msgMissingSticker)
		return
	}

	in := service.UploadInput{
		Name:        c.PostForm("name"),
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
	}
	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, msgMissingSticker)
			return
		}
		in.Price = &price
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, "upload_failed", err, "userId", id.LoginID)
		return
	}
	defer src.Close()
	in.Content = src

	stickerID, err := h.services.UploadSticker(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			fail(c, http.StatusBadRequest, msgMissingSticker)
			return
		}
		h.respondError(c, "upload_failed", err, "userId", id.LoginID)
		return
	}

	if h.log != nil {
		h.log.Infow("sticker_uploaded", "stickerId", stickerID, "userId", id.LoginID)
	}
	ok(c, http.StatusCreated, gin.H{"stickerId": stickerID})
}

// @Summary      List all stickers
// @Tags         stickers
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/stickers [get]
func (h *Handler) listStickers(c *gin.Context) {
	stickers, err := h.services.ListStickers(c.Request.Context())
	if err != nil {
		h.respondError(c, "list_stickers_failed", err)
		return
	}
	ok(c, http.StatusOK, gin.H{"stickers": nonNil(stickers)})
}

// @Summary      Stickers owned by the caller
// @Tags         stickers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /api/user-stickers [get]
func (h *Handler) userStickers(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "user_stickers_failed", err)
		return
	}

	stickers, err := h.services.ListUserStickers(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "user_stickers_failed", err, "userId", id.LoginID)
		return
	}
	ok(c, http.StatusOK, gin.H{"stickers": nonNil(stickers)})
}

// @Summary      Buy a sticker with coins
// @Tags         stickers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      purchaseRequest  true  "stickerId"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Router       /api/purchase-sticker [post]
func (h *Handler) purchaseSticker(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "purchase_failed", err)
		return
	}

	var input purchaseRequest
	if !h.bindOrBadRequest(c, &input, msgMissingID) {
		return
	}

	err = h.services.Purchase(c.Request.Context(), id, input.StickerID)
	h.metrics.ObservePurchase(purchaseResult(err))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			fail(c, http.StatusBadRequest, msgMissingID)
			return
		}
		h.respondError(c, "purchase_failed", err, "userId", id.LoginID, "stickerId", input.StickerID)
		return
	}

	if h.log != nil {
		h.log.Infow("sticker_purchased", "userId", id.LoginID, "stickerId", input.StickerID)
	}
	ok(c, http.StatusOK, nil)
}

// purchaseResult is the metrics label for a purchase outcome.
func purchaseResult(err error) string {
	if err == nil {
		return metrics.PurchaseOK
	}
	if errors.Is(err, service.ErrInsufficientFunds) {
		return metrics.PurchaseInsufficientFunds
	}
	if status, _ := statusFor(err); status < http.StatusInternalServerError {
		return metrics.PurchaseRejected
	}
	return metrics.PurchaseError
}

func nonNil(s []models.Sticker) []models.Sticker {
	if s == nil {
		return []models.Sticker{}
	}
	return s
}
