// Package scheduler provides the loop that materializes recurring
// transactions on their cadence.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Ticker is the unit of work driven by the runner. Tick processes every
// rule due at the given instant and reports how many transactions it created.
type Ticker interface {
	Tick(ctx context.Context, now time.Time) (int, error)
}

// Runner drives a Ticker at a fixed interval until its context is cancelled.
type Runner struct {
	ticker   Ticker
	interval time.Duration
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Ticker   Ticker
	Interval time.Duration
	Logger   *slog.Logger
}

// NewRunner creates a new scheduler runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Ticker == nil {
		return nil, errors.New("ticker is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{
		ticker:   opts.Ticker,
		interval: opts.Interval,
		logger:   opts.Logger,
	}, nil
}

// Run starts the scheduler loop and runs until the context is cancelled.
// Tick errors are logged and the loop keeps going.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("starting recurring scheduler", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("recurring scheduler stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case now := <-ticker.C:
			start := time.Now()
			created, err := r.ticker.Tick(ctx, now)
			if err != nil {
				r.logger.Error("recurring tick failed", "error", err, "elapsed", time.Since(start))
				continue
			}
			if created > 0 {
				r.logger.Info("recurring tick complete", "created", created, "elapsed", time.Since(start))
			}
		}
	}
}
