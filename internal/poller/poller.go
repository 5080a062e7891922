// Package poller runs periodic refreshes against the backend, standing in for
// the interval-based polling a browser client would do. One Poller drives one
// refresh function; a failed pass is logged and the loop keeps ticking.
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"classroomclient/internal/logging"
)

type Poller struct {
	name     string
	refresh  func(context.Context) error
	logger   *logging.Logger
	interval time.Duration
}

func New(name string, interval time.Duration, logger *logging.Logger, refresh func(context.Context) error) *Poller {
	return &Poller{
		name:     name,
		refresh:  refresh,
		logger:   logger,
		interval: interval,
	}
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "poller stopped", zap.String("poller", p.name))
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

// Start runs the poller on its own goroutine and returns a stop function that
// cancels it and waits for the loop to exit.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if err := p.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn(ctx, "poller refresh failed", zap.String("poller", p.name), zap.Error(err))
	}
}
