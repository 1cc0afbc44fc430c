package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/mdnsexplorer/mdnsexplorer/internal/config"
	"github.com/mdnsexplorer/mdnsexplorer/internal/metrics"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

// pruneInterval is how often the runner enforces store retention bounds.
const pruneInterval = 5 * time.Minute

// Runner orchestrates capture startup, retention pruning, and shutdown.
type Runner struct {
	logger *slog.Logger
	stats  *Stats
}

// NewRunner creates a new capture runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger, stats: NewStats()}
}

// Stats returns the runner's in-process capture statistics collector.
func (r *Runner) Stats() *Stats {
	return r.stats
}

// Run joins the configured multicast group, stores captured messages, and
// prunes retention on a timer until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, st *store.Store, m *metrics.Metrics) error {
	maxAge, err := time.ParseDuration(cfg.Store.RetentionPeriod)
	if err != nil {
		maxAge = time.Hour
	}

	listener := &Listener{
		Logger:     r.logger,
		Sink:       st,
		Metrics:    m,
		Stats:      r.stats,
		Interface:  cfg.Capture.Interface,
		Group:      cfg.Capture.Group,
		Port:       cfg.Capture.Port,
		ReadBuffer: cfg.Capture.ReadBufferBytes,
		Workers:    cfg.Capture.Workers,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- listener.Run(ctx) }()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return <-errCh
		case err := <-errCh:
			return err
		case <-ticker.C:
			if err := st.Prune(cfg.Store.MaxMessages, maxAge); err != nil && r.logger != nil {
				r.logger.Warn("failed to prune message store", "err", err)
			}
		}
	}
}
