package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const pruneTimeout = 2 * time.Minute

// newActivityPruneTask deletes moderation events older than the configured retention.
func newActivityPruneTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", ActivityPruneTask)

	return func(ctx context.Context) error {
		retention := deps.Config.Scheduler.Retention
		if retention <= 0 {
			log.WarnContext(ctx, "Retention not set, skipping prune")
			return nil
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, pruneTimeout)
		defer cancel()

		cutoff := deps.now().Add(-retention)
		startTime := time.Now()

		removed, err := deps.Store.PruneModerationEvents(timeoutCtx, cutoff)
		duration := time.Since(startTime)

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				log.WarnContext(ctx, "Activity prune timed out or was cancelled", "error", err, "duration", duration)
			} else {
				log.ErrorContext(ctx, "Activity prune failed", "error", err, "duration", duration)
			}
			return fmt.Errorf("activity prune failed: %w", err)
		}

		log.InfoContext(ctx, "Activity prune completed",
			"removed", removed,
			"cutoff", cutoff.Format(time.RFC3339),
			"duration", duration)
		return nil
	}
}
