package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"taskdesk/internal/models"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws/tasks", 1 * time.Second},
		{"interval_string_valid", "/ws/tasks?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws/tasks?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws/tasks?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws/tasks?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws/tasks?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws/tasks?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws/tasks?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws/tasks?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func wsURL(t *testing.T, base, path string, query url.Values) string {
	t.Helper()
	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = path
	u.RawQuery = query.Encode()
	return u.String()
}

func TestWebSocket_RecordStream_InitialAndPeriodic(t *testing.T) {
	recs := &mockRecords{list: []models.Record{
		{ID: 1, OwnerID: 8, Kind: models.KindTask, Title: "first"},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 8}, Records: recs}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv.URL, "/ws/tasks", url.Values{"interval_ms": {"20"}}), authHeader("valid"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "records" {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got []models.Record
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("unmarshal records: %v", err)
	}
	if len(got) != 1 || got[0].Title != "first" {
		t.Fatalf("unexpected records: %+v", got)
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "records" {
		t.Fatalf("expected type=records, got %+v", env)
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 8}, Records: &mockRecords{}}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(t, srv.URL, "/ws/tickets", nil), nil)
	if err == nil {
		t.Fatal("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 8}, Records: &mockRecords{err: errBoom}}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv.URL, "/ws/tasks", nil), authHeader("valid"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
