package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sticker_market/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	minInterval      = 100 * time.Millisecond
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// wsEnvelope is the frame written to wallet stream clients.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) newUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: h.checkOrigin}
}

// checkOrigin follows the CORS allow-list. Requests without an Origin
// header come from non-browser clients and are accepted.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.opts.CORSOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return len(h.opts.CORSOrigins) == 0
}

// @Summary      Stream the caller's wallet over a websocket
// @Tags         stream
// @Security     BearerAuth
// @Param        interval     query  string  false  "push interval, e.g. 2s"
// @Param        interval_ms  query  int     false  "push interval in milliseconds"
// @Success      101
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /ws/wallet [get]
func (h *Handler) walletStream(c *gin.Context) {
	id, err := identityFrom(c)
	if err != nil {
		h.respondError(c, "ws_rejected", err)
		return
	}
	interval := h.parseInterval(c)

	conn, err := h.newUpgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "userId", id.LoginID, "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendWallet(ctx, conn, id); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "userId", id.LoginID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendWallet(ctx, conn, id); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "userId", id.LoginID, "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 within bounds,
// falling back to the configured default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v <= maxIntervalMilli {
			if d := time.Duration(v) * time.Millisecond; d >= minInterval {
				return d
			}
		}
	}

	return h.opts.WSInterval
}

// startReader drains incoming frames so control messages are handled and closure is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendWallet writes the current balance. A lookup failure is reported to
// the client as an error frame and ends the stream.
func (h *Handler) sendWallet(ctx context.Context, conn *websocket.Conn, id models.Identity) error {
	user, err := h.services.GetUserInfo(ctx, id)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		_, msg := statusFor(err)
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: msg})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: "wallet", Data: user})
}
