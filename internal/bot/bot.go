// Package bot wires the runtime together: the update queue, the event loop
// dispatching to handlers, the HTTP gateway, and the task scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Runner is a long-lived component stopped by cancelling its context.
type Runner interface {
	Run(ctx context.Context) error
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	gateway   Runner
	loop      Runner
	scheduler *Scheduler
}

// NewBot creates the orchestrator. A nil scheduler runs without background tasks.
func NewBot(logger *slog.Logger, gateway Runner, loop Runner, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		gateway:   gateway,
		loop:      loop,
		scheduler: scheduler,
	}
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	// The loop outlives the gateway: it is stopped only once the gateway has
	// finished in-flight requests, so every acknowledged update is enqueued
	// before the queue closes.
	loopCtx, stopLoop := context.WithCancel(context.WithoutCancel(gCtx))
	defer stopLoop()

	g.Go(func() error {
		defer stopLoop()
		b.logger.Info("Starting HTTP gateway...")
		return b.gateway.Run(gCtx)
	})

	g.Go(func() error {
		b.logger.Info("Starting event loop...")
		if err := b.loop.Run(loopCtx); err != nil {
			return fmt.Errorf("event loop: %w", err)
		}
		if loopCtx.Err() == nil {
			b.logger.Warn("Event loop stopped unexpectedly without context cancellation.")
			return errors.New("event loop stopped unexpectedly")
		}
		return nil
	})

	if b.scheduler != nil {
		g.Go(func() error {
			b.logger.Info("Starting scheduler...")
			if err := b.scheduler.Start(); err != nil {
				b.logger.Error("Failed to start scheduler", "error", err)
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping scheduler...")

			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
