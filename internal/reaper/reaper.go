// Package reaper purges expired OTP challenges in the background. Expiry is
// enforced at verification time; the reaper only keeps the table from
// accumulating dead rows.
package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/pdf-transparency/internal/metrics"
	"github.com/ErlanBelekov/pdf-transparency/internal/repository"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 10 * time.Second

type Reaper struct {
	challenges repository.ChallengeRepository
	logger     *slog.Logger
	schedule   string
	cron       *cron.Cron
}

func New(challenges repository.ChallengeRepository, logger *slog.Logger, schedule string) *Reaper {
	return &Reaper{
		challenges: challenges,
		logger:     logger.With("component", "challenge_reaper"),
		schedule:   schedule,
		cron:       cron.New(),
	}
}

// Start schedules the purge and blocks until ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.schedule, r.purge); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("challenge reaper started", "schedule", r.schedule)

	<-ctx.Done()
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info("challenge reaper stopped")
	return nil
}

func (r *Reaper) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	removed, err := r.challenges.DeleteExpired(ctx, time.Now())
	if err != nil {
		r.logger.Error("purge expired challenges", "error", err)
		return
	}
	if removed > 0 {
		metrics.ChallengesPurgedTotal.Add(float64(removed))
		r.logger.Debug("purged expired challenges", "count", removed)
	}
}
