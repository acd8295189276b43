package handlers

import (
	"context"
	"strconv"
	"time"

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
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{CheckOrigin: h.originAllowed}
}

// @Summary      Stream the caller's records
// @Description  Sends {"type":"records","data":[...]} on connect and then every interval (?interval=2s or ?interval_ms=2000, max 10s).
// @Tags         records
// @Param        interval     query  string  false  "Push interval"  example(2s)
// @Param        interval_ms  query  int     false  "Push interval in milliseconds"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /ws/tasks [get]
// @Router       /ws/tickets [get]
// @Security     BearerAuth
func (h *Handler) wsConnect(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.mustCaller(c)
		if !ok {
			return
		}
		interval := h.parseInterval(c)

		conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
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
		if err := h.sendRecords(ctx, conn, userID, kind); err != nil {
			h.log.Infow("ws_write_failed_initial", "err", err, "user_id", userID)
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
					h.log.Infow("ws_ping_failed", "err", err)
					return
				}
			case <-ticker.C:
				if err := h.sendRecords(ctx, conn, userID, kind); err != nil {
					h.log.Infow("ws_write_failed", "err", err, "user_id", userID)
					return
				}
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendRecords writes the caller's current records of kind with a write deadline.
func (h *Handler) sendRecords(ctx context.Context, conn *websocket.Conn, userID int, kind string) error {
	recs, err := h.services.Records.List(ctx, userID, kind)
	if err != nil {
		h.log.Errorw("ws_list_records_failed", "err", err, "user_id", userID, "kind", kind)
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "records", Data: recs})
}
