// Package sweep runs the background completion sweeper: confirmed
// appointments whose day has fully elapsed are marked completed so the admin
// dashboard reflects reality without manual bookkeeping.
package sweep

import (
	"context"
	"time"

	"go.uber.org/zap"

	"petspa-backend/internal/schedule"
	"petspa-backend/internal/store"
)

// Sweeper periodically finalizes elapsed appointments.
type Sweeper struct {
	store    store.Store
	interval time.Duration
	logger   *zap.Logger
}

// New creates a sweeper with the given interval.
func New(s store.Store, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{store: s, interval: interval, logger: logger}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("completion sweeper started", zap.Duration("interval", s.interval))

	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("completion sweeper stopped")
			return
		}
	}
}

// SweepOnce completes every confirmed appointment from a day that has fully
// passed. Today's appointments are left alone; pending and cancelled rows are
// never touched.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	todayStart, _ := schedule.DayWindow(time.Now())
	n, err := s.store.CompleteElapsedAppointments(ctx, todayStart)
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("appointments completed", zap.Int64("count", n))
	}
}
