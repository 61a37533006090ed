package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/workersession/pkg/logger"
)

// Collector periodically removes expired sessions from a store.
type Collector struct {
	store    Store
	interval time.Duration
	log      *slog.Logger
}

// NewCollector creates a collector. A nil logger discards output.
func NewCollector(store Store, interval time.Duration, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Collector{store: store, interval: interval, log: log}
}

// Collect runs a single DeleteExpired pass
func (c *Collector) Collect(ctx context.Context) error {
	start := time.Now()
	if err := c.store.DeleteExpired(ctx); err != nil {
		return err
	}
	c.log.DebugContext(ctx, "expired sessions collected",
		logger.Component("session_gc"),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// Run collects on every tick until ctx is done. A non-positive interval disables
// collection and Run returns immediately. Failed passes are logged and retried
// on the next tick.
func (c *Collector) Run(ctx context.Context) error {
	if c.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Collect(ctx); err != nil {
				c.log.ErrorContext(ctx, "session collection failed",
					logger.Component("session_gc"),
					logger.Error(err),
				)
			}
		}
	}
}
