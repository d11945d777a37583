package handlers

import (
	"strings"

	"sticker_market/internal/models"
	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
)

const identityCtx = "identity"

// authMiddleware verifies the Bearer token and stores the caller's identity.
// No token is 401, a bad or expired one is 403.
func (h *Handler) authMiddleware(c *gin.Context) {
	id, err := h.services.VerifyToken(bearerToken(c.GetHeader("Authorization")))
	if err != nil {
		h.respondError(c, "auth_rejected", err, "path", c.FullPath())
		return
	}

	c.Set(identityCtx, id)
	c.Next()
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// identityFrom returns the identity set by authMiddleware.
func identityFrom(c *gin.Context) (models.Identity, error) {
	v, ok := c.Get(identityCtx)
	if !ok {
		return models.Identity{}, service.ErrUnauthenticated
	}
	id, ok := v.(models.Identity)
	if !ok {
		return models.Identity{}, service.ErrUnauthenticated
	}
	return id, nil
}
