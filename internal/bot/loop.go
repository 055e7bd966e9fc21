package bot

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot/models"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/swapguard/internal/event"
)

// EventLoop is the single consumer of the update queue. Each event is
// handled on a bounded pool so a slow platform call only delays itself.
type EventLoop struct {
	queue         *Queue
	dispatcher    *Dispatcher
	botUsername   string
	maxConcurrent int
	logger        *slog.Logger
}

// NewEventLoop creates the loop. botUsername filters commands addressed to other bots.
func NewEventLoop(queue *Queue, dispatcher *Dispatcher, botUsername string, maxConcurrent int, logger *slog.Logger) *EventLoop {
	if logger == nil {
		logger = slog.Default()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &EventLoop{
		queue:         queue,
		dispatcher:    dispatcher,
		botUsername:   botUsername,
		maxConcurrent: maxConcurrent,
		logger:        logger.With("component", "event_loop"),
	}
}

// Run consumes updates until ctx is done. It then closes the queue, handles
// what is still buffered, and waits for in-flight handlers. Handlers run on a
// context that is not cancelled by shutdown.
func (l *EventLoop) Run(ctx context.Context) error {
	l.logger.InfoContext(ctx, "Event loop started", "max_concurrent", l.maxConcurrent)

	var g errgroup.Group
	g.SetLimit(l.maxConcurrent)
	handlerCtx := context.WithoutCancel(ctx)
	updates := l.queue.Updates()

	for {
		select {
		case <-ctx.Done():
			l.queue.Close()
			drained := 0
			for upd := range updates {
				l.dispatch(handlerCtx, &g, upd)
				drained++
			}
			_ = g.Wait()
			l.logger.Info("Event loop stopped", "drained", drained)
			return nil
		case upd, ok := <-updates:
			if !ok {
				_ = g.Wait()
				l.logger.Info("Event loop stopped: queue closed")
				return nil
			}
			l.dispatch(handlerCtx, &g, upd)
		}
	}
}

func (l *EventLoop) dispatch(ctx context.Context, g *errgroup.Group, upd *models.Update) {
	ev := event.FromUpdate(upd, l.botUsername)
	g.Go(func() error {
		l.dispatcher.Dispatch(ctx, ev)
		return nil
	})
}
