package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeQueue struct {
	mu      sync.Mutex
	updates []*models.Update
	err     error
}

func (f *fakeQueue) Enqueue(upd *models.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, upd)
	return nil
}

func newTestServer(q Enqueuer) *Server {
	return NewServer("127.0.0.1:0", q, "bot is live", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewServerLeavesDebugMode(t *testing.T) {
	// Switches the global gin mode, so not parallel.
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	gin.SetMode(gin.DebugMode)
	newTestServer(&fakeQueue{})
	if got := gin.Mode(); got != gin.ReleaseMode {
		t.Errorf("gin mode after NewServer = %q, want %q", got, gin.ReleaseMode)
	}

	gin.SetMode(gin.TestMode)
	newTestServer(&fakeQueue{})
	if got := gin.Mode(); got != gin.TestMode {
		t.Errorf("gin mode = %q, explicit TestMode was overridden", got)
	}
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeQueue{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "bot is live" {
		t.Errorf("body = %q", got)
	}
}

func TestWebhook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		queueErr  error
		wantQueue int
	}{
		{
			name:      "text message",
			body:      `{"update_id":10,"message":{"message_id":5,"chat":{"id":-100,"type":"supergroup"},"from":{"id":7,"is_bot":false,"first_name":"Ana"},"text":"hi"}}`,
			wantQueue: 1,
		},
		{
			name:      "unrelated update",
			body:      `{"update_id":11}`,
			wantQueue: 1,
		},
		{
			name: "malformed body",
			body: `{"update_id":`,
		},
		{
			name: "empty body",
			body: ``,
		},
		{
			name:     "queue full",
			body:     `{"update_id":12}`,
			queueErr: errors.New("update queue is full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := &fakeQueue{err: tt.queueErr}
			srv := newTestServer(q)

			req := httptest.NewRequest(http.MethodPost, WebhookPath, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Body.String(); got != "ok" {
				t.Errorf("body = %q, want ok", got)
			}
			if len(q.updates) != tt.wantQueue {
				t.Fatalf("queued %d updates, want %d", len(q.updates), tt.wantQueue)
			}
		})
	}
}

func TestWebhookDecodesMessage(t *testing.T) {
	t.Parallel()

	q := &fakeQueue{}
	srv := newTestServer(q)

	body := `{"update_id":10,"message":{"message_id":5,"chat":{"id":-100,"type":"supergroup"},"text":"hello"}}`
	req := httptest.NewRequest(http.MethodPost, WebhookPath, strings.NewReader(body))
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if len(q.updates) != 1 {
		t.Fatalf("queued %d updates, want 1", len(q.updates))
	}
	upd := q.updates[0]
	if upd.ID != 10 || upd.Message == nil || upd.Message.ID != 5 || upd.Message.Chat.ID != -100 || upd.Message.Text != "hello" {
		t.Errorf("decoded update = %+v", upd)
	}
}

func TestWebhookRejectsGet(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeQueue{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, WebhookPath, nil))

	if rec.Code == http.StatusOK {
		t.Errorf("GET %s returned 200", WebhookPath)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeQueue{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
