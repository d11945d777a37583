package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"sticker_market/internal/models"
	"sticker_market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, nil, Options{WSInterval: 2 * time.Second})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_small", "/ws?interval=1ms", 2 * time.Second},
		{"interval_too_large", "/ws?interval=1m", 2 * time.Second},
		{"interval_garbage", "/ws?interval=soon", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=60000", 2 * time.Second},
		{"interval_wins_over_ms", "/ws?interval=300ms&interval_ms=500", 300 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestCheckOrigin(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no_origin_header", []string{"https://a.example"}, "", true},
		{"wildcard", []string{"*"}, "https://x.example", true},
		{"listed", []string{"https://a.example"}, "https://a.example", true},
		{"not_listed", []string{"https://a.example"}, "https://evil.example", false},
		{"empty_list_allows", nil, "https://x.example", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &Handler{opts: Options{CORSOrigins: tc.allowed}}
			req := httptest.NewRequest(http.MethodGet, "/ws/wallet", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if got := h.checkOrigin(req); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// --- websocket integration tests ---

func walletURL(t *testing.T, srv *httptest.Server, query url.Values) string {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws/wallet"
	u.RawQuery = query.Encode()
	return u.String()
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func TestWalletStream_InitialAndPeriodic(t *testing.T) {
	auth := &mockAuth{identity: testIdentity}
	market := &mockMarket{user: models.UserSummary{ID: 7, Name: "Ann", UserID: "ann1", Coins: 4900}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: auth, Marketplace: market}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(walletURL(t, srv, url.Values{"interval_ms": {"100"}}), authHeader("good"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "wallet" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var user models.UserSummary
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("unmarshal wallet: %v", err)
	}
	if user.UserID != "ann1" || user.Coins != 4900 {
		t.Fatalf("unexpected wallet: %+v", user)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "wallet" {
		t.Fatalf("expected type=wallet, got %+v", env)
	}
}

func TestWalletStream_RequiresToken(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: &mockAuth{}, Marketplace: &mockMarket{}}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(walletURL(t, srv, nil), nil)
	if err == nil {
		t.Fatal("expected handshake failure without token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}
}

func TestWalletStream_LookupErrorSendsErrorAndCloses(t *testing.T) {
	auth := &mockAuth{identity: testIdentity}
	market := &mockMarket{userErr: service.ErrUserNotFound}
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: auth, Marketplace: market}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(walletURL(t, srv, nil), authHeader("good"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if env.Type != "error" || env.Error != msgUserNotFound {
		t.Fatalf("unexpected frame: %+v", env)
	}

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestWalletStream_StoreErrorIsOpaque(t *testing.T) {
	auth := &mockAuth{identity: testIdentity}
	market := &mockMarket{userErr: errors.New("disk I/O error")}
	srv := httptest.NewServer(newTestRouter(&service.Service{Authorization: auth, Marketplace: market}))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(walletURL(t, srv, nil), authHeader("good"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if env.Error != msgServerError {
		t.Fatalf("internal detail leaked: %+v", env)
	}
}
