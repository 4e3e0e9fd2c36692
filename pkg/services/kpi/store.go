package kpi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/catalog"
)

// Source produces a fresh collection, used by Reset.
type Source interface {
	Generate(ctx context.Context) []domain.Observation
}

// Entry is a manual KPI entry.
type Entry struct {
	Date        time.Time
	Granularity domain.Granularity
	Category    string // optional, must match the KPI's category when set
	KPIID       string
	Minimum     float64
	Target      float64
	Actual      float64
	Comment     string
}

// NewObservation validates a manual entry against the catalog and builds the observation.
func NewObservation(c *catalog.Catalog, e Entry) (domain.Observation, error) {
	kpi, ok := c.Lookup(e.KPIID)
	if !ok {
		return domain.Observation{}, fmt.Errorf("%w: %q", ErrUnknownKPI, e.KPIID)
	}
	if e.Category != "" && e.Category != kpi.Category {
		return domain.Observation{}, fmt.Errorf("%w: %q does not contain %q", ErrUnknownCategory, e.Category, e.KPIID)
	}
	if e.Date.IsZero() {
		return domain.Observation{}, fmt.Errorf("%w: date is required", ErrInvalidObservation)
	}

	period := domain.NewPeriod(e.Date, e.Granularity)
	obs := domain.Observation{
		PeriodStart: period.Start,
		WeekID:      period.ID,
		PeriodRange: period.Range,
		Category:    kpi.Category,
		KPIID:       kpi.ID,
		DisplayName: kpi.DisplayName,
		Minimum:     e.Minimum,
		Target:      e.Target,
		Actual:      e.Actual,
		Comment:     e.Comment,
	}
	if !obs.Valid() {
		return domain.Observation{}, fmt.Errorf("%w: values must be finite numbers", ErrInvalidObservation)
	}
	return obs, nil
}

// Store is the session's observation collection. All mutations are serialised;
// readers always receive copies.
type Store struct {
	catalog *catalog.Catalog
	source  Source

	mu      sync.RWMutex
	records []domain.Observation
}

// NewStore creates a store seeded with initial. Invalid initial records are skipped.
func NewStore(c *catalog.Catalog, source Source, initial []domain.Observation) *Store {
	s := &Store{
		catalog: c,
		source:  source,
		records: make([]domain.Observation, 0, len(initial)),
	}
	for _, o := range initial {
		if o.Valid() {
			s.records = append(s.records, o)
		}
	}
	return s
}

// Append adds a manual entry at the end of the collection.
func (s *Store) Append(ctx context.Context, e Entry) (domain.Observation, error) {
	obs, err := NewObservation(s.catalog, e)
	if err != nil {
		return domain.Observation{}, err
	}

	s.mu.Lock()
	s.records = append(s.records, obs)
	size := len(s.records)
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Str("kpi_id", obs.KPIID).
		Str("period", obs.WeekID).
		Int("size", size).
		Msg("observation appended")
	return obs, nil
}

// ReplaceAll sanitizes rows and adopts them as the new collection. It returns
// the number of rows dropped during sanitization.
func (s *Store) ReplaceAll(ctx context.Context, rows []domain.ObservationRow) int {
	logger := zerolog.Ctx(ctx)
	observations, dropped := Sanitize(rows)

	orphaned := 0
	for _, o := range observations {
		if !s.catalog.Contains(o.KPIID) {
			orphaned++
		}
	}

	s.mu.Lock()
	s.records = observations
	s.mu.Unlock()

	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("dropped unparseable rows")
	}
	if orphaned > 0 {
		logger.Warn().Int("orphaned", orphaned).Msg("rows reference kpi ids missing from the catalog")
	}
	logger.Info().Int("size", len(observations)).Msg("collection replaced")
	return dropped
}

// Load adopts already typed observations, e.g. a stored snapshot.
func (s *Store) Load(observations []domain.Observation) {
	records := make([]domain.Observation, 0, len(observations))
	for _, o := range observations {
		if o.Valid() {
			records = append(records, o)
		}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

// Reset discards the collection and replaces it with freshly generated data.
func (s *Store) Reset(ctx context.Context) int {
	var fresh []domain.Observation
	if s.source != nil {
		fresh = s.source.Generate(ctx)
	}
	s.Load(fresh)

	size := s.Len()
	zerolog.Ctx(ctx).Info().Int("size", size).Msg("collection reset")
	return size
}

// Snapshot returns a copy of the current records in append order.
func (s *Store) Snapshot() []domain.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Observation, len(s.records))
	copy(out, s.records)
	return out
}

// Rows returns the current records as table rows.
func (s *Store) Rows() []domain.ObservationRow {
	return Rows(s.Snapshot())
}

// Columns returns the column schema, which does not depend on the contents.
func (s *Store) Columns() []string {
	return append([]string(nil), domain.Columns...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}
