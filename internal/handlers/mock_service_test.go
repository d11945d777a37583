package handlers

import (
	"context"
	"io"
	"net/http"

	"sticker_market/internal/models"
	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	loginResult service.LoginResult
	loginErr    error
	identity    models.Identity
	verifyErr   error
	changeErr   error

	lastRegister  service.RegisterInput
	lastLoginID   string
	lastPassword  string
	lastToken     string
	lastChangeOld string
	lastChangeNew string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) error {
	m.lastRegister = in
	return m.registerErr
}

func (m *mockAuth) Login(_ context.Context, loginID, password string) (service.LoginResult, error) {
	m.lastLoginID = loginID
	m.lastPassword = password
	return m.loginResult, m.loginErr
}

func (m *mockAuth) VerifyToken(token string) (models.Identity, error) {
	m.lastToken = token
	if token == "" {
		return models.Identity{}, service.ErrUnauthenticated
	}
	return m.identity, m.verifyErr
}

func (m *mockAuth) ChangePassword(_ context.Context, _ models.Identity, current, next string) error {
	m.lastChangeOld = current
	m.lastChangeNew = next
	return m.changeErr
}

type mockMarket struct {
	uploadID    int
	uploadErr   error
	stickers    []models.Sticker
	listErr     error
	owned       []models.Sticker
	ownedErr    error
	purchaseErr error
	user        models.UserSummary
	userErr     error

	lastUpload      service.UploadInput
	lastUploadBytes []byte
	lastPurchaseID  int
	lastIdentity    models.Identity
}

func (m *mockMarket) UploadSticker(_ context.Context, id models.Identity, in service.UploadInput) (int, error) {
	m.lastIdentity = id
	m.lastUpload = in
	if in.Content != nil {
		m.lastUploadBytes, _ = io.ReadAll(in.Content)
	}
	return m.uploadID, m.uploadErr
}

func (m *mockMarket) ListStickers(context.Context) ([]models.Sticker, error) {
	return m.stickers, m.listErr
}

func (m *mockMarket) ListUserStickers(_ context.Context, id models.Identity) ([]models.Sticker, error) {
	m.lastIdentity = id
	return m.owned, m.ownedErr
}

func (m *mockMarket) Purchase(_ context.Context, id models.Identity, stickerID int) error {
	m.lastIdentity = id
	m.lastPurchaseID = stickerID
	return m.purchaseErr
}

func (m *mockMarket) GetUserInfo(_ context.Context, id models.Identity) (models.UserSummary, error) {
	m.lastIdentity = id
	return m.user, m.userErr
}

// ---- Shared Test Helpers ----

var testIdentity = models.Identity{ID: 7, Name: "Ann", LoginID: "ann1"}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil, Options{})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
