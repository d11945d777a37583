package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sticker_market/internal/metrics"
	"sticker_market/internal/models"
	"sticker_market/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func multipartUpload(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "badge.png")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = io.WriteString(fw, "PNGDATA")
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func doUpload(r http.Handler, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-sticker", body)
	req.Header = authHeader(token)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	return w
}

func TestStickerHandlers_Upload(t *testing.T) {
	auth := &mockAuth{identity: testIdentity}
	market := &mockMarket{uploadID: 11}
	r := newTestRouter(&service.Service{Authorization: auth, Marketplace: market})

	body, ct := multipartUpload(t, map[string]string{"name": "Badge", "price": "100"}, true)
	w := doUpload(r, body, ct, "tok")

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	if !out.IsSuccess || out.StickerID != 11 {
		t.Fatalf("unexpected body: %+v", out)
	}
	in := market.lastUpload
	if in.Name != "Badge" || in.Price == nil || *in.Price != 100 || in.Filename != "badge.png" {
		t.Fatalf("upload input: %+v", in)
	}
	if string(market.lastUploadBytes) != "PNGDATA" {
		t.Fatalf("image bytes: %q", market.lastUploadBytes)
	}
	if market.lastIdentity != testIdentity {
		t.Fatalf("uploader identity: %+v", market.lastIdentity)
	}
}

func TestStickerHandlers_UploadValidation(t *testing.T) {
	cases := []struct {
		name      string
		fields    map[string]string
		withImage bool
		svcErr    error
	}{
		{"no image", map[string]string{"name": "Badge", "price": "100"}, false, nil},
		{"price not a number", map[string]string{"name": "Badge", "price": "cheap"}, true, nil},
		{"rejected by service", map[string]string{"name": "", "price": "100"}, true, service.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarket{uploadErr: tc.svcErr}
			r := newTestRouter(&service.Service{Authorization: &mockAuth{identity: testIdentity}, Marketplace: market})

			body, ct := multipartUpload(t, tc.fields, tc.withImage)
			w := doUpload(r, body, ct, "tok")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", w.Code)
			}
			if out := decode(t, w); out.IsSuccess || out.Message != msgMissingSticker {
				t.Fatalf("unexpected body: %+v", out)
			}
		})
	}
}

func TestStickerHandlers_UploadMissingPriceIsNil(t *testing.T) {
	market := &mockMarket{uploadErr: service.ErrValidation}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{identity: testIdentity}, Marketplace: market})

	body, ct := multipartUpload(t, map[string]string{"name": "Badge"}, true)
	_ = doUpload(r, body, ct, "tok")
	if market.lastUpload.Price != nil {
		t.Fatalf("absent price must reach the service as nil, got %d", *market.lastUpload.Price)
	}
}

func TestStickerHandlers_UploadAuth(t *testing.T) {
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{verifyErr: service.ErrInvalidToken},
		Marketplace:   &mockMarket{},
	})

	body, ct := multipartUpload(t, map[string]string{"name": "Badge", "price": "1"}, true)
	if w := doUpload(r, body, ct, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status=%d, want 401", w.Code)
	}
	body, ct = multipartUpload(t, map[string]string{"name": "Badge", "price": "1"}, true)
	if w := doUpload(r, body, ct, "forged"); w.Code != http.StatusForbidden {
		t.Fatalf("bad token: status=%d, want 403", w.Code)
	}
}

func TestStickerHandlers_ListStickers(t *testing.T) {
	market := &mockMarket{stickers: []models.Sticker{{ID: 1, Name: "Badge", Image: "1-a.png", UserID: "ann1", Price: 100}}}
	r := newTestRouter(&service.Service{Marketplace: market})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stickers", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	out := decode(t, w)
	if !out.IsSuccess || len(out.Stickers) != 1 || out.Stickers[0] != market.stickers[0] {
		t.Fatalf("unexpected body: %+v", out)
	}

	// empty listing is an empty array, not null
	market.stickers = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stickers", nil))
	if !strings.Contains(w.Body.String(), `"stickers":[]`) {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}

	market.listErr = errors.New("no such table: stickers")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stickers", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "no such table") {
		t.Fatalf("store detail leaked: %s", w.Body.String())
	}
}

func TestStickerHandlers_UserStickers(t *testing.T) {
	market := &mockMarket{owned: []models.Sticker{{ID: 3, Name: "Star", Price: 50, UserID: "bob1"}}}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{identity: testIdentity}, Marketplace: market})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user-stickers", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if out := decode(t, w); len(out.Stickers) != 1 || out.Stickers[0].ID != 3 {
		t.Fatalf("unexpected body: %+v", out)
	}
	if market.lastIdentity.LoginID != "ann1" {
		t.Fatalf("listing for wrong user: %+v", market.lastIdentity)
	}
}

func TestStickerHandlers_Purchase(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		code   int
		result string
	}{
		{"ok", `{"stickerId":3}`, nil, http.StatusOK, metrics.PurchaseOK},
		{"missing id", `{}`, service.ErrValidation, http.StatusBadRequest, metrics.PurchaseRejected},
		{"not found", `{"stickerId":99}`, service.ErrStickerNotFound, http.StatusNotFound, metrics.PurchaseRejected},
		{"free sticker", `{"stickerId":4}`, service.ErrFreeSticker, http.StatusBadRequest, metrics.PurchaseRejected},
		{"already owned", `{"stickerId":3}`, service.ErrAlreadyOwned, http.StatusBadRequest, metrics.PurchaseRejected},
		{"no coins", `{"stickerId":5}`, service.ErrInsufficientFunds, http.StatusBadRequest, metrics.PurchaseInsufficientFunds},
		{"store error", `{"stickerId":3}`, errors.New("disk full"), http.StatusInternalServerError, metrics.PurchaseError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.New()
			market := &mockMarket{purchaseErr: tc.err}
			h := NewHandler(&service.Service{Authorization: &mockAuth{identity: testIdentity}, Marketplace: market}, nil, m, Options{})
			r := h.InitRoutes()

			w := postJSON(r, "/api/purchase-sticker", tc.body, authHeader("tok"))
			if w.Code != tc.code {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.code, w.Body.String())
			}
			if decode(t, w).IsSuccess != (tc.err == nil) {
				t.Fatalf("isSuccess mismatch: %s", w.Body.String())
			}
			if got := testutil.ToFloat64(m.Purchases().WithLabelValues(tc.result)); got != 1 {
				t.Fatalf("purchases_total{result=%q} = %v, want 1", tc.result, got)
			}
		})
	}
}

func TestStickerHandlers_PurchaseFormBody(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{identity: testIdentity}, Marketplace: market})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/purchase-sticker", strings.NewReader("stickerId=12"))
	req.Header = authHeader("tok")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || market.lastPurchaseID != 12 {
		t.Fatalf("status=%d stickerId=%d", w.Code, market.lastPurchaseID)
	}
}

func TestSystemRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1-abc.png"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(&service.Service{}, nil, metrics.New(), Options{UploadDir: dir})
	r := h.InitRoutes()

	cases := []struct {
		path     string
		code     int
		contains string
	}{
		{"/", http.StatusOK, "server is running"},
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/uploads/stickers/1-abc.png", http.StatusOK, "img"},
		{"/uploads/stickers/missing.png", http.StatusNotFound, ""},
		{"/metrics", http.StatusOK, "sticker_market_http_requests_total"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.code {
				t.Fatalf("status=%d, want %d", w.Code, tc.code)
			}
			if !strings.Contains(w.Body.String(), tc.contains) {
				t.Fatalf("body %q does not contain %q", w.Body.String(), tc.contains)
			}
		})
	}
}
