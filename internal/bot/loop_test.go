package bot

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/swapguard/internal/bot/handlers"
	"github.com/edgard/swapguard/internal/event"
)

func textUpdate(id int64, text string) *models.Update {
	return &models.Update{
		ID: id,
		Message: &models.Message{
			ID:   int(id),
			Chat: models.Chat{ID: -100},
			From: &models.User{ID: 7, FirstName: "Ana"},
			Text: text,
		},
	}
}

func TestEventLoopHandlesAndDrains(t *testing.T) {
	t.Parallel()

	var handled atomic.Int32
	table := map[string]handlers.RegisteredHandler{
		event.RouteText: {
			Kind:    event.KindText,
			Handler: func(context.Context, *event.Event) { handled.Add(1) },
		},
	}

	q := NewQueue(16)
	loop := NewEventLoop(q, NewDispatcher(discardLogger(), table), "swapbot", 4, discardLogger())

	for i := range 10 {
		if err := q.Enqueue(textUpdate(int64(i), fmt.Sprintf("msg %d", i))); err != nil {
			t.Fatal(err)
		}
	}
	// Updates that no handler accepts are consumed without effect.
	_ = q.Enqueue(&models.Update{ID: 99})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := handled.Load(); got != 10 {
		t.Errorf("handled %d events, want 10", got)
	}
	if err := q.Enqueue(textUpdate(100, "late")); err == nil {
		t.Error("queue still accepts updates after loop shutdown")
	}
}

func TestEventLoopBoundsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 2
	var inFlight, peak, handled atomic.Int32

	table := map[string]handlers.RegisteredHandler{
		event.RouteText: {
			Kind: event.KindText,
			Handler: func(context.Context, *event.Event) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				inFlight.Add(-1)
				handled.Add(1)
			},
		},
	}

	q := NewQueue(16)
	loop := NewEventLoop(q, NewDispatcher(discardLogger(), table), "", limit, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	for i := range 8 {
		if err := q.Enqueue(textUpdate(int64(i), "hello")); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.After(5 * time.Second)
	for handled.Load() < 8 {
		select {
		case <-deadline:
			t.Fatalf("handled %d of 8 events before timeout", handled.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if p := peak.Load(); p > limit {
		t.Errorf("peak concurrency = %d, want <= %d", p, limit)
	}
}

func TestEventLoopHandlerContextSurvivesShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var ctxErr atomic.Value

	table := map[string]handlers.RegisteredHandler{
		event.RouteText: {
			Kind: event.KindText,
			Handler: func(ctx context.Context, _ *event.Event) {
				close(started)
				<-release
				ctxErr.Store(fmt.Sprint(ctx.Err()))
			},
		},
	}

	q := NewQueue(1)
	loop := NewEventLoop(q, NewDispatcher(discardLogger(), table), "", 1, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	if err := q.Enqueue(textUpdate(1, "hello")); err != nil {
		t.Fatal(err)
	}
	<-started
	cancel()
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := ctxErr.Load(); got != "<nil>" {
		t.Errorf("handler context error = %v, want <nil>", got)
	}
}
