package handlers

import (
	"errors"
	"net/http"

	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Name     string `json:"name" form:"name"`
	UserID   string `json:"userId" form:"userId"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	UserID   string `json:"userId" form:"userId"`
	Password string `json:"password" form:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
}

// bindOrBadRequest binds a JSON or form body into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		fail(c, http.StatusBadRequest, msg)
		return false
	}
	return true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      signUpRequest  true  "name, userId, password"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]interface{}
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if !h.bindOrBadRequest(c, &input, msgMissingFields) {
		return
	}

	err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Name:     input.Name,
		LoginID:  input.UserID,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, "sign_up_failed", err, "userId", input.UserID)
		return
	}

	ok(c, http.StatusCreated, nil)
}

// @Summary      Log in and obtain a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "userId, password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if !h.bindOrBadRequest(c, &input, msgMissingFields) {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.UserID, input.Password)
	if err != nil {
		// an unknown handle is reported like a bad password
		if errors.Is(err, service.ErrUserNotFound) {
			if h.log != nil {
				h.log.Infow("login_failed", "userId", input.UserID, "err", err)
			}
			fail(c, http.StatusUnauthorized, msgUserNotFound)
			return
		}
		h.respondError(c, "login_failed", err, "userId", input.UserID)
		return
	}

	ok(c, http.StatusOK, gin.H{"token": res.Token, "user": res.User})
}

// @Summary      Current user's profile and balance
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /userinfo [get]
func (h *Handler) userInfo(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "user_info_failed", err)
		return
	}

	user, err := h.services.GetUserInfo(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "user_info_failed", err, "userId", id.LoginID)
		return
	}

	ok(c, http.StatusOK, gin.H{"user": user})
}

// @Summary      Change the caller's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      changePasswordRequest  true  "currentPassword, newPassword"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Router       /changepassword [post]
func (h *Handler) changePassword(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "change_password_failed", err)
		return
	}

	var input changePasswordRequest
	if !h.bindOrBadRequest(c, &input, msgMissingFields) {
		return
	}

	if err := h.services.ChangePassword(c.Request.Context(), id, input.CurrentPassword, input.NewPassword); err != nil {
		h.respondError(c, "change_password_failed", err, "userId", id.LoginID)
		return
	}

	ok(c, http.StatusOK, nil)
}
