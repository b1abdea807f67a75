package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helpdeskpro/helpdesk-service/internal/service"
)

// StartReminderWorker runs the reminder sweep on a fixed interval until the
// context is cancelled. An interval of zero disables the worker; the sweep
// is normally driven by the external cron endpoint instead.
func StartReminderWorker(ctx context.Context, reminders *service.ReminderService, interval time.Duration, logger *zap.Logger) {
	if reminders == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := reminders.Sweep(ctx); err != nil {
					logger.Error("scheduled reminder sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
