package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/lumbrapp/lumbr-server/internal/config"
	"github.com/lumbrapp/lumbr-server/internal/logger"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.Jobs.SessionCleanupInterval)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := sessionService.CleanupExpired(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := sessionService.CleanupExpired(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started", "interval", cfg.Jobs.SessionCleanupInterval)

	return &SessionCleanupJob{cancel: cancel}, nil
}

// SuspensionSweepJob periodically reactivates users whose suspension has
// elapsed. The sweep is idempotent, so overlapping runs are harmless.
type SuspensionSweepJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SuspensionSweepJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSuspensionSweepJob provides the daily suspension sweep job.
func ProvideSuspensionSweepJob(i do.Injector) (*SuspensionSweepJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	moderationService := do.MustInvoke[*service.ModerationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.Jobs.SuspensionSweepInterval)
		defer ticker.Stop()

		// Sweep once on startup so a restart never delays reactivation.
		if cleared, err := moderationService.SweepExpiredSuspensions(ctx); err != nil {
			log.Warn("Initial suspension sweep failed", "error", err)
		} else if cleared > 0 {
			log.Info("Initial suspension sweep completed", "cleared", cleared)
		}

		for {
			select {
			case <-ticker.C:
				if cleared, err := moderationService.SweepExpiredSuspensions(ctx); err != nil {
					log.Warn("Suspension sweep failed", "error", err)
				} else if cleared > 0 {
					log.Info("Suspension sweep completed", "cleared", cleared)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Suspension sweep job started", "interval", cfg.Jobs.SuspensionSweepInterval)

	return &SuspensionSweepJob{cancel: cancel}, nil
}
