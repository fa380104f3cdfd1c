package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const jobTimeout = time.Minute

type tokenCleaner interface {
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type activityPurger interface {
	Purge(ctx context.Context) (int, error)
}

// housekeeping runs the periodic maintenance jobs. A zero interval disables a job.
type housekeeping struct {
	scheduler gocron.Scheduler
}

func newHousekeeping(tokens tokenCleaner, activity activityPurger, tokenInterval time.Duration, purgeInterval time.Duration) (*housekeeping, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if tokenInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(tokenInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
				defer cancel()

				removed, err := tokens.CleanExpiredTokens(ctx)
				if err != nil {
					slog.Error("refresh token cleanup failed", "error", err)
					return
				}
				slog.Info("expired refresh tokens removed", "count", removed)
			}),
			gocron.WithName("token-cleanup"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return nil, err
		}
	}

	if purgeInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(purgeInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
				defer cancel()

				deleted, err := activity.Purge(ctx)
				if err != nil {
					slog.Error("activity purge failed", "error", err)
					return
				}
				slog.Info("old activity entries purged", "count", deleted)
			}),
			gocron.WithName("activity-purge"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return nil, err
		}
	}

	return &housekeeping{scheduler: sched}, nil
}

func (h *housekeeping) Start() {
	h.scheduler.Start()
	slog.Info("housekeeping scheduler started", "jobs", len(h.scheduler.Jobs()))
}

func (h *housekeeping) Stop() {
	if err := h.scheduler.Shutdown(); err != nil {
		slog.Warn("scheduler shutdown", "error", err)
	}
}
