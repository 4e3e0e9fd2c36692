package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/metrics"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/models/store"
	"github.com/unsovich/BBDashboard/pkg/services/catalog"
	"github.com/unsovich/BBDashboard/pkg/services/kpi"
)

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) Save(ctx context.Context, records []store.ObservationRecord) (*store.Snapshot, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *mockSnapshots) Latest(ctx context.Context) (*store.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Snapshot), args.Error(1)
}

func (m *mockSnapshots) Prune(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

type staticSource []domain.Observation

func (s staticSource) Generate(context.Context) []domain.Observation {
	return s
}

var today = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func obs(date time.Time, id, name string, minimum, target, actual float64) domain.Observation {
	p := domain.NewPeriod(date, domain.GranularityWeekly)
	return domain.Observation{
		PeriodStart: p.Start,
		WeekID:      p.ID,
		PeriodRange: p.Range,
		Category:    catalog.CategorySMMEngagement,
		KPIID:       id,
		DisplayName: name,
		Minimum:     minimum,
		Target:      target,
		Actual:      actual,
	}
}

const erName = "Engagement Rate (ER), %"

func newController(t *testing.T, snapshots *mockSnapshots, m *metrics.Metrics, initial ...domain.Observation) *Controller {
	t.Helper()
	opts := Options{
		Store:        kpi.NewStore(catalog.Default(), staticSource(initial), initial),
		Metrics:      m,
		OverviewKPIs: []string{"SMM.ER", "SMM.MISSING"},
		Now:          func() time.Time { return today },
	}
	if snapshots != nil {
		opts.Snapshots = snapshots
	}
	c, err := NewController(opts)
	require.NoError(t, err)
	return c
}

func TestNewController_RequiresStore(t *testing.T) {
	_, err := NewController(Options{})
	assert.Error(t, err)
}

func TestController_AddObservation(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Save", mock.Anything, mock.MatchedBy(func(records []store.ObservationRecord) bool {
		return len(records) == 1 && records[0].KPIID == "SMM.ER"
	})).Return(&store.Snapshot{ID: "snap-1"}, nil).Once()

	m := metrics.New()
	c := newController(t, snapshots, m)
	ctx := context.Background()

	added, err := c.AddObservation(ctx, kpi.Entry{
		Date:        day(18),
		Granularity: domain.GranularityWeekly,
		KPIID:       "SMM.ER",
		Minimum:     2.5,
		Target:      4,
		Actual:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, erName, added.DisplayName)

	// the next query reflects the command
	found := c.Alerts(ctx, 0)
	require.Len(t, found, 1)
	assert.Equal(t, "SMM.ER", found[0].KPIID)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Observations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("append", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Alerts))
	snapshots.AssertExpectations(t)
}

func TestController_AddObservationRejected(t *testing.T) {
	m := metrics.New()
	c := newController(t, nil, m)

	_, err := c.AddObservation(context.Background(), kpi.Entry{Date: day(18), KPIID: "NOPE"})
	assert.ErrorIs(t, err, kpi.ErrUnknownKPI)
	assert.Empty(t, c.History(context.Background(), nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("append", "error")))
}

func TestController_ReplaceObservations(t *testing.T) {
	m := metrics.New()
	c := newController(t, nil, m, obs(day(4), "SMM.ER", erName, 2.5, 4, 3))

	res, err := c.ReplaceObservations(context.Background(), []domain.ObservationRow{
		{
			domain.ColumnPeriodStart: "2024-03-11",
			domain.ColumnKPIID:       "SMM.ER",
			domain.ColumnDisplayName: erName,
			domain.ColumnMinimum:     "2.5",
			domain.ColumnTarget:      "4",
			domain.ColumnActual:      "N/A",
		},
		{
			domain.ColumnPeriodStart: "2024-03-12",
			domain.ColumnKPIID:       "SMM.ER",
			domain.ColumnDisplayName: erName,
			domain.ColumnMinimum:     "2.5",
			domain.ColumnTarget:      "4",
			domain.ColumnActual:      "3,5",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReplaceResult{Rows: 1, Dropped: 1}, res)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DroppedRows))

	history := c.History(context.Background(), nil)
	require.Len(t, history, 1)
	assert.Equal(t, 3.5, history[0].Actual)
}

func TestController_ResetSnapshotFailure(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Save", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

	m := metrics.New()
	c := newController(t, snapshots, m, obs(day(4), "SMM.ER", erName, 2.5, 4, 3))

	size, err := c.Reset(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, size)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Commands.WithLabelValues("reset", "error")))
	snapshots.AssertExpectations(t)
}

func TestController_InitFromSnapshot(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Latest", mock.Anything).Return(&store.Snapshot{
		ID: "snap-7",
		Records: []store.ObservationRecord{
			{PeriodStart: day(11), WeekID: "2024-W11", KPIID: "SMM.ER", DisplayName: erName, Minimum: 2.5, Target: 4, Actual: 5},
		},
	}, nil).Once()

	c := newController(t, snapshots, nil)
	require.NoError(t, c.Init(context.Background()))

	history := c.History(context.Background(), nil)
	require.Len(t, history, 1)
	assert.Equal(t, 5.0, history[0].Actual)
	snapshots.AssertExpectations(t)
}

func TestController_InitGeneratesWithoutSnapshot(t *testing.T) {
	snapshots := &mockSnapshots{}
	snapshots.On("Latest", mock.Anything).Return(nil, nil).Once()
	snapshots.On("Save", mock.Anything, mock.Anything).Return(&store.Snapshot{ID: "snap-1"}, nil).Once()

	generated := obs(day(4), "SMM.ER", erName, 2.5, 4, 3)
	c, err := NewController(Options{
		Store:     kpi.NewStore(catalog.Default(), staticSource{generated}, nil),
		Snapshots: snapshots,
		Now:       func() time.Time { return today },
	})
	require.NoError(t, err)

	require.NoError(t, c.Init(context.Background()))
	assert.Len(t, c.History(context.Background(), nil), 1)
	snapshots.AssertExpectations(t)
}

func TestController_Overview(t *testing.T) {
	c := newController(t, nil, nil,
		obs(day(4), "SMM.ER", erName, 2.5, 4, 3),
		obs(day(11), "SMM.ER", erName, 2.5, 4, 2),
		obs(day(11), "SMM.CTR", "CTR (Клики на сайт), %", 1, 2, 0.5),
	)

	month := &domain.MonthFilter{Year: 2024, Month: time.March}
	overview := c.Overview(context.Background(), domain.ModeWeekly, month)

	require.Len(t, overview.Series, 1)
	assert.Equal(t, erName, overview.Series[0].DisplayName)
	assert.Len(t, overview.Series[0].Points, 2)
	assert.Equal(t, 30, overview.WindowDays)
	assert.Len(t, overview.Alerts, 2)
}

func TestController_SeriesByName(t *testing.T) {
	c := newController(t, nil, nil,
		obs(day(4), "SMM.ER", erName, 2.5, 4, 3),
		obs(day(11), "SMM.ER", erName, 2.5, 4, 5),
	)

	series := c.Series(context.Background(), domain.ModeMonthly, nil, []string{erName, "unknown"})
	require.Len(t, series, 2)
	require.Len(t, series[0].Points, 1)
	assert.Equal(t, 4.0, series[0].Points[0].Actual)
	assert.Empty(t, series[1].Points)
}

func TestController_Export(t *testing.T) {
	c := newController(t, nil, nil, obs(day(4), "SMM.ER", erName, 2.5, 4, 3))

	var buf bytes.Buffer
	require.NoError(t, c.Export(context.Background(), &buf))
	assert.Contains(t, buf.String(), "period_start,week_id")
	assert.Contains(t, buf.String(), "2024-03-04,2024-W10")
}
