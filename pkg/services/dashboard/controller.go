package dashboard

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/adapters"
	"github.com/unsovich/BBDashboard/pkg/metrics"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/aggregate"
	"github.com/unsovich/BBDashboard/pkg/services/alerts"
	"github.com/unsovich/BBDashboard/pkg/services/export"
	"github.com/unsovich/BBDashboard/pkg/services/kpi"
	"github.com/unsovich/BBDashboard/pkg/services/views"
	"github.com/unsovich/BBDashboard/pkg/store/duckdb/snapshot"
)

// Dashboard applies user commands to the observation collection and answers
// the view queries. Callers re-query the views they display after each command.
type Dashboard interface {
	Catalog(ctx context.Context) []domain.Category
	Options(ctx context.Context, category string) []domain.KPI

	AddObservation(ctx context.Context, entry kpi.Entry) (domain.Observation, error)
	ReplaceObservations(ctx context.Context, rows []domain.ObservationRow) (domain.ReplaceResult, error)
	Reset(ctx context.Context) (int, error)

	History(ctx context.Context, names []string) []domain.Observation
	Series(ctx context.Context, mode domain.Mode, month *domain.MonthFilter, names []string) []domain.Series
	Alerts(ctx context.Context, windowDays int) []domain.Alert
	SMMSummary(ctx context.Context, windowDays int) []domain.Card
	Overview(ctx context.Context, mode domain.Mode, month *domain.MonthFilter) domain.Overview
	Export(ctx context.Context, w io.Writer) error
}

type Options struct {
	Store        *kpi.Store
	Snapshots    snapshot.Store   // optional
	Metrics      *metrics.Metrics // optional
	WindowDays   int
	OverviewKPIs []string
	Now          func() time.Time
}

type Controller struct {
	store        *kpi.Store
	snapshots    snapshot.Store
	metrics      *metrics.Metrics
	windowDays   int
	overviewKPIs []string
	now          func() time.Time

	// serialises command + snapshot pairs
	mu sync.Mutex
}

func NewController(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("observation store is nil")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = alerts.DefaultWindowDays
	}
	return &Controller{
		store:        opts.Store,
		snapshots:    opts.Snapshots,
		metrics:      opts.Metrics,
		windowDays:   opts.WindowDays,
		overviewKPIs: opts.OverviewKPIs,
		now:          opts.Now,
	}, nil
}

// Init restores the latest snapshot, or generates a synthetic history when
// there is none.
func (c *Controller) Init(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if c.snapshots != nil {
		snap, err := c.snapshots.Latest(ctx)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if snap != nil {
			c.store.Load(adapters.MapStoreRecordsToDomainObservations(snap.Records))
			c.observe()
			logger.Info().
				Str("snapshot", snap.ID).
				Int("size", c.store.Len()).
				Msg("restored observations from snapshot")
			return nil
		}
	}

	_, err := c.Reset(ctx)
	return err
}

func (c *Controller) Catalog(_ context.Context) []domain.Category {
	return c.store.Catalog().All()
}

func (c *Controller) Options(ctx context.Context, category string) []domain.KPI {
	return c.store.Catalog().Options(ctx, category)
}

func (c *Controller) AddObservation(ctx context.Context, entry kpi.Entry) (domain.Observation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	obs, err := c.store.Append(ctx, entry)
	if err != nil {
		c.command("append", err)
		return domain.Observation{}, err
	}
	c.command("append", c.persist(ctx))
	return obs, nil
}

func (c *Controller) ReplaceObservations(ctx context.Context, rows []domain.ObservationRow) (domain.ReplaceResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := c.store.ReplaceAll(ctx, rows)
	if c.metrics != nil {
		c.metrics.DroppedRows.Add(float64(dropped))
	}
	err := c.persist(ctx)
	c.command("replace", err)
	return domain.ReplaceResult{Rows: c.store.Len(), Dropped: dropped}, err
}

func (c *Controller) Reset(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.store.Reset(ctx)
	err := c.persist(ctx)
	c.command("reset", err)
	return size, err
}

func (c *Controller) History(_ context.Context, names []string) []domain.Observation {
	return views.History(c.store.Snapshot(), names)
}

func (c *Controller) Series(_ context.Context, mode domain.Mode, month *domain.MonthFilter, names []string) []domain.Series {
	points := aggregate.Aggregate(c.store.Snapshot(), mode, month)
	if len(names) == 0 {
		return aggregate.Group(points)
	}

	out := make([]domain.Series, 0, len(names))
	for _, name := range names {
		out = append(out, aggregate.Series(points, name))
	}
	return out
}

func (c *Controller) Alerts(_ context.Context, windowDays int) []domain.Alert {
	if windowDays <= 0 {
		windowDays = c.windowDays
	}
	found := alerts.FindAlerts(c.store.Snapshot(), windowDays, c.now())
	if c.metrics != nil {
		c.metrics.Alerts.Set(float64(len(found)))
	}
	return found
}

func (c *Controller) SMMSummary(_ context.Context, windowDays int) []domain.Card {
	if windowDays <= 0 {
		windowDays = c.windowDays
	}
	return views.Summarize(c.store.Snapshot(), views.SMMCards, windowDays, c.now())
}

func (c *Controller) Overview(ctx context.Context, mode domain.Mode, month *domain.MonthFilter) domain.Overview {
	logger := zerolog.Ctx(ctx)

	var names []string
	for _, id := range c.overviewKPIs {
		k, ok := c.store.Catalog().Lookup(id)
		if !ok {
			logger.Warn().Str("kpi_id", id).Msg("overview kpi is not in the catalog")
			continue
		}
		names = append(names, k.DisplayName)
	}

	series := []domain.Series{}
	if len(names) > 0 {
		series = c.Series(ctx, mode, month, names)
	}

	return domain.Overview{
		Mode:       mode,
		Month:      month,
		WindowDays: c.windowDays,
		Series:     series,
		Alerts:     c.Alerts(ctx, c.windowDays),
	}
}

func (c *Controller) Export(_ context.Context, w io.Writer) error {
	return export.WriteCSV(w, c.store.Snapshot())
}

func (c *Controller) persist(ctx context.Context) error {
	c.observe()
	if c.snapshots == nil {
		return nil
	}

	snap, err := c.snapshots.Save(ctx, adapters.MapDomainObservationsToStoreRecords(c.store.Snapshot()))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to save snapshot")
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("snapshot", snap.ID).Msg("snapshot saved")
	return nil
}

func (c *Controller) observe() {
	if c.metrics != nil {
		c.metrics.Observations.Set(float64(c.store.Len()))
	}
}

func (c *Controller) command(name string, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.Commands.WithLabelValues(name, status).Inc()
}
