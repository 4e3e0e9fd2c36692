package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/metrics"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/catalog"
	"github.com/unsovich/BBDashboard/pkg/services/config"
	"github.com/unsovich/BBDashboard/pkg/services/generator"
	"github.com/unsovich/BBDashboard/pkg/services/kpi"
	"github.com/unsovich/BBDashboard/pkg/services/retention"
	"github.com/unsovich/BBDashboard/pkg/store/duckdb"
	"github.com/unsovich/BBDashboard/pkg/store/duckdb/snapshot"
)

// Session is an initialised dashboard together with the resources it holds.
type Session struct {
	*Controller
	db        *sql.DB
	snapshots snapshot.Store
}

// StartRetention runs snapshot pruning in the background until ctx is done.
// It returns nil when snapshots are disabled.
func (s *Session) StartRetention(ctx context.Context, config retention.RunnerConfig) *retention.Runner {
	if s.snapshots == nil {
		return nil
	}
	runner := retention.NewRunner(s.snapshots, config)
	go runner.Run(ctx)
	return runner
}

func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open wires the catalog, generator, store and optional DuckDB snapshots from
// settings, and restores or generates the initial collection.
func Open(ctx context.Context, settings *config.Settings, m *metrics.Metrics) (*Session, error) {
	logger := zerolog.Ctx(ctx)

	cat := catalog.Default()
	if settings.Catalog.Path != "" {
		loaded, err := catalog.Load(settings.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
		logger.Info().Str("path", settings.Catalog.Path).Msg("catalog loaded")
	}

	seed := settings.Generator.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := generator.New(cat, generator.Config{
		Cadence:     domain.Granularity(settings.Generator.Cadence),
		Probability: settings.Generator.Probability,
		Seed:        seed,
	})

	opts := Options{
		Store:        kpi.NewStore(cat, gen, nil),
		Metrics:      m,
		WindowDays:   settings.Alerts.WindowDays,
		OverviewKPIs: settings.Overview.KPIs,
	}

	session := &Session{}
	if settings.Storage.DBPath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.Storage.DBPath})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		session.db = db

		snapshots, err := snapshot.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create snapshot store: %w", err)
		}
		opts.Snapshots = snapshots
		session.snapshots = snapshots
	}

	controller, err := NewController(opts)
	if err != nil {
		_ = session.Close()
		return nil, err
	}
	if err := controller.Init(ctx); err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to initialise dashboard: %w", err)
	}
	session.Controller = controller
	return session, nil
}
