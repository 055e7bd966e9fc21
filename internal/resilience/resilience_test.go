package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errBadGateway = errors.New("bad gateway")

const adminChat int64 = -1009999

type flakyMessenger struct {
	calls   atomic.Int32
	failing atomic.Bool
	// sendErr and deleteErr, when set, are returned on every call.
	sendErr   error
	deleteErr error
}

func (f *flakyMessenger) fail() error {
	f.calls.Add(1)
	if f.failing.Load() {
		return errBadGateway
	}
	return nil
}

func (f *flakyMessenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.sendErr != nil && params.ChatID == adminChat {
		f.calls.Add(1)
		return nil, f.sendErr
	}
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &models.Message{ID: 1}, nil
}

func (f *flakyMessenger) DeleteMessage(context.Context, *bot.DeleteMessageParams) (bool, error) {
	if f.deleteErr != nil {
		f.calls.Add(1)
		return false, f.deleteErr
	}
	if err := f.fail(); err != nil {
		return false, err
	}
	return true, nil
}

func TestMessengerTripsAndRecovers(t *testing.T) {
	t.Parallel()

	inner := &flakyMessenger{}
	inner.failing.Store(true)
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "telegram", MaxFailures: 3, Cooldown: 50 * time.Millisecond}, discardLogger())
	m := NewMessenger(inner, cb)
	ctx := context.Background()

	for range 3 {
		if _, err := m.DeleteMessage(ctx, &bot.DeleteMessageParams{}); err == nil {
			t.Fatal("DeleteMessage() succeeded against failing client")
		}
	}
	if cb.State() != StateOpen {
		t.Fatalf("State() = %v, want OPEN", cb.State())
	}

	_, err := m.SendMessage(ctx, &bot.SendMessageParams{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("SendMessage() on open circuit error = %v, want ErrCircuitOpen", err)
	}
	if got := inner.calls.Load(); got != 3 {
		t.Errorf("inner calls = %d, want 3 (open circuit must not call through)", got)
	}

	inner.failing.Store(false)
	time.Sleep(80 * time.Millisecond)

	msg, err := m.SendMessage(ctx, &bot.SendMessageParams{})
	if err != nil || msg == nil || msg.ID != 1 {
		t.Fatalf("SendMessage() after cooldown = %v, %v", msg, err)
	}
	if cb.State() != StateClosed {
		t.Errorf("State() = %v, want CLOSED", cb.State())
	}
}

func TestExecuteAddsDeadline(t *testing.T) {
	t.Parallel()

	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "deadline", Timeout: 20 * time.Millisecond}, discardLogger())

	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("operation context has no deadline")
		}
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Execute() error = %v, want ErrTimeout", err)
	}
}

func TestCircuitStateString(t *testing.T) {
	t.Parallel()

	tests := map[CircuitState]string{
		StateClosed:      "CLOSED",
		StateHalfOpen:    "HALF-OPEN",
		StateOpen:        "OPEN",
		CircuitState(42): "UNKNOWN",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}

func TestClientErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	inner := &flakyMessenger{
		deleteErr: fmt.Errorf("%w, Bad Request: message can't be deleted", bot.ErrorBadRequest),
		sendErr:   fmt.Errorf("%w, Forbidden: bot can't initiate conversation with a user", bot.ErrorForbidden),
	}
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "telegram", MaxFailures: 3, Cooldown: time.Minute}, discardLogger())
	m := NewMessenger(inner, cb)
	ctx := context.Background()

	for range 5 {
		if _, err := m.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: int64(-100), MessageID: 1}); !errors.Is(err, bot.ErrorBadRequest) {
			t.Fatalf("DeleteMessage() error = %v, want ErrorBadRequest", err)
		}
		if _, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: adminChat, Text: "alert"}); !errors.Is(err, bot.ErrorForbidden) {
			t.Fatalf("SendMessage(admin) error = %v, want ErrorForbidden", err)
		}
	}
	if cb.State() != StateClosed {
		t.Fatalf("State() = %v after client errors, want CLOSED", cb.State())
	}

	before := inner.calls.Load()
	msg, err := m.SendMessage(ctx, &bot.SendMessageParams{ChatID: int64(-200), Text: "Welcome"})
	if err != nil || msg == nil {
		t.Fatalf("greeting to healthy chat = %v, %v", msg, err)
	}
	if inner.calls.Load() != before+1 {
		t.Error("greeting did not reach the platform")
	}
}

func TestIsPermanent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"bad request", fmt.Errorf("%w, message to delete not found", bot.ErrorBadRequest), true},
		{"forbidden", bot.ErrorForbidden, true},
		{"not found", bot.ErrorNotFound, true},
		{"unauthorized", bot.ErrorUnauthorized, true},
		{"too many requests", bot.ErrorTooManyRequests, false},
		{"transport", errBadGateway, false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPermanent(tt.err); got != tt.want {
				t.Errorf("IsPermanent(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
