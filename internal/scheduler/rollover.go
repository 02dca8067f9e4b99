// Package scheduler runs recurring maintenance jobs for the progress store.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// RolloverRepository defines the persistence operation needed by the daily
// focus rollover.
type RolloverRepository interface {
	// ResetDailyFocus zeroes every user's focus_seconds_today and returns
	// the number of rows touched.
	ResetDailyFocus(ctx context.Context) (int64, error)
}

// rolloverTimeout bounds one rollover run against a stalled store.
const rolloverTimeout = 30 * time.Second

// Rollover resets focus_seconds_today once per day. The core treats the
// reset as an exogenous event; this job is the thing that makes it happen.
type Rollover struct {
	scheduler *gocron.Scheduler
	repo      RolloverRepository
	log       *zap.Logger
}

// NewRollover creates a rollover job firing daily at the given UTC hour.
func NewRollover(repo RolloverRepository, log *zap.Logger) *Rollover {
	return &Rollover{
		scheduler: gocron.NewScheduler(time.UTC),
		repo:      repo,
		log:       log,
	}
}

// Start schedules the daily reset and begins running it asynchronously.
func (r *Rollover) Start(hour int) error {
	at := fmt.Sprintf("%02d:00", hour)
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.run); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	r.scheduler.StartAsync()
	r.log.Info("daily focus rollover scheduled", zap.String("at", at))
	return nil
}

// Stop terminates the scheduled job.
func (r *Rollover) Stop() {
	r.scheduler.Stop()
}

func (r *Rollover) run() {
	ctx, cancel := context.WithTimeout(context.Background(), rolloverTimeout)
	defer cancel()

	rows, err := r.repo.ResetDailyFocus(ctx)
	if err != nil {
		r.log.Error("daily focus rollover failed", zap.Error(err))
		return
	}
	r.log.Info("daily focus rollover complete", zap.Int64("rows", rows))
}
