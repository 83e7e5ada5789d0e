package core

// scheduler.go runs background maintenance for import sessions.
//
// Sessions live in memory only. The sweeper evicts those idle past
// SessionIdleTTL so abandoned previews do not accumulate.

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the session sweeper every ten minutes.
const DefaultSweepSchedule = "@every 10m"

// Sweeper wraps the cron scheduler driving SweepIdle.
type Sweeper struct {
	cron *cron.Cron
}

// StartSessionSweeper schedules SweepIdle with a cron spec (standard five
// field syntax or descriptors such as "@every 5m"). Call Stop on shutdown.
func (s *Service) StartSessionSweeper(schedule string, loc *time.Location) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if loc == nil {
		loc = time.Local
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(schedule, func() {
		start := time.Now()
		removed := s.SweepIdle()
		if removed > 0 {
			slog.Info("idle import sessions evicted",
				"removed", removed,
				"remaining", s.SessionCount(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("session sweeper started", "schedule", schedule, "idle_ttl", s.cfg.SessionIdleTTL)
	return &Sweeper{cron: c}, nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (w *Sweeper) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	slog.Info("session sweeper stopped")
}
