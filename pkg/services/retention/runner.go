package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/store/duckdb/snapshot"
)

type RunnerConfig struct {
	Keep     int
	Interval time.Duration
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Keep:     20,
		Interval: time.Hour,
	}
}

type RunnerProgress struct {
	Removed  int64
	PrunedAt time.Time
}

// Runner periodically drops old snapshots so that only the newest Keep remain.
type Runner struct {
	snapshots snapshot.Store
	config    RunnerConfig
	done      chan struct{}
	progress  chan RunnerProgress
	now       func() time.Time
}

func NewRunner(snapshots snapshot.Store, config RunnerConfig) *Runner {
	defaults := DefaultRunnerConfig()
	if config.Keep < 1 {
		config.Keep = defaults.Keep
	}
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	return &Runner{
		snapshots: snapshots,
		config:    config,
		done:      make(chan struct{}),
		progress:  make(chan RunnerProgress, 100),
		now:       time.Now,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports every prune that removed at least one snapshot. Reports
// are dropped when nobody reads them.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Run prunes once immediately and then on every tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "retention").Logger()
	defer close(r.done)
	defer close(r.progress)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		removed, err := r.snapshots.Prune(ctx, r.config.Keep)
		switch {
		case err != nil:
			logger.Error().Err(err).Msg("failed to prune snapshots")
		case removed > 0:
			logger.Info().Int64("removed", removed).Int("keep", r.config.Keep).Msg("old snapshots pruned")
			select {
			case r.progress <- RunnerProgress{Removed: removed, PrunedAt: r.now()}:
			default:
			}
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("snapshot retention stopped")
			return
		case <-ticker.C:
		}
	}
}
