// Package sweeper removes expired action tokens on a schedule. Reads
// filter on expiry already, so this is storage hygiene, not
// correctness.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tarjamli/backend/internal/metrics"
)

const sweepTimeout = 30 * time.Second

// Store is the subset of the user repository the sweeper needs.
type Store interface {
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

type Sweeper struct {
	store    Store
	logger   *slog.Logger
	schedule string
}

// New builds a sweeper running on the given cron schedule
// (e.g. "@hourly").
func New(store Store, logger *slog.Logger, schedule string) *Sweeper {
	return &Sweeper{
		store:    store,
		logger:   logger.With("component", "sweeper"),
		schedule: schedule,
	}
}

// Start runs the cron loop until ctx is cancelled. One sweep runs
// immediately at startup.
func (s *Sweeper) Start(ctx context.Context) error {
	s.Sweep(ctx)

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return err
	}
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// Sweep deletes expired tokens once. Errors are logged, not returned:
// the next cycle retries.
func (s *Sweeper) Sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := s.store.DeleteExpiredTokens(sweepCtx)
	if err != nil {
		s.logger.Error("token sweep", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("token sweep", "deleted", n)
	}
	metrics.TokensSweptTotal.Add(float64(n))
}
