package bot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edgard/swapguard/internal/bot/handlers"
	"github.com/edgard/swapguard/internal/event"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func waitForCancel(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestBotRun(t *testing.T) {
	t.Parallel()

	boom := errors.New("listen tcp :5000: address already in use")

	tests := []struct {
		name    string
		gateway runnerFunc
		loop    runnerFunc
		cancel  bool
		wantErr error
	}{
		{
			name:    "graceful shutdown",
			gateway: waitForCancel,
			loop:    waitForCancel,
			cancel:  true,
		},
		{
			name:    "gateway failure stops everything",
			gateway: func(context.Context) error { return boom },
			loop:    waitForCancel,
			wantErr: boom,
		},
		{
			name:    "loop exits early",
			gateway: waitForCancel,
			loop:    func(context.Context) error { return nil },
			wantErr: errors.New("event loop stopped unexpectedly"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewScheduler(discardLogger(), nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			b := NewBot(discardLogger(), tt.gateway, tt.loop, s)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				time.AfterFunc(20*time.Millisecond, cancel)
			}

			err = b.Run(ctx)
			switch {
			case tt.wantErr == nil && err != nil:
				t.Fatalf("Run() error = %v, want nil", err)
			case tt.wantErr != nil && err == nil:
				t.Fatalf("Run() = nil, want %v", tt.wantErr)
			case tt.wantErr != nil && !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error():
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBotStopsGatewayBeforeQueue(t *testing.T) {
	t.Parallel()

	var handled atomic.Int32
	table := map[string]handlers.RegisteredHandler{
		event.RouteText: {
			Kind:    event.KindText,
			Handler: func(context.Context, *event.Event) { handled.Add(1) },
		},
	}
	q := NewQueue(4)
	loop := NewEventLoop(q, NewDispatcher(discardLogger(), table), "", 2, discardLogger())

	// The gateway acknowledges one more update while draining after shutdown.
	enqueueErr := make(chan error, 1)
	gateway := runnerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		enqueueErr <- q.Enqueue(textUpdate(1, "late but acknowledged"))
		return nil
	})

	b := NewBot(discardLogger(), gateway, loop, nil)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	if err := b.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := <-enqueueErr; err != nil {
		t.Fatalf("Enqueue during gateway drain error = %v, want nil", err)
	}
	if got := handled.Load(); got != 1 {
		t.Errorf("handled %d updates, want 1", got)
	}
}
