package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/models/store"
	"github.com/unsovich/BBDashboard/pkg/store/duckdb"
)

// Store keeps copies of the observation collection between sessions.
// Every Save writes a new snapshot; Latest returns the most recent one.
type Store interface {
	Save(ctx context.Context, records []store.ObservationRecord) (*store.Snapshot, error)
	Latest(ctx context.Context) (*store.Snapshot, error)
	// Prune deletes all but the newest keep snapshots and returns how many were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: time.Now,
	}, nil
}

const (
	insertSnapshotQuery = `INSERT INTO kpi_snapshots (id, created_at, row_count) VALUES (?, ?, ?)`

	insertObservationQuery = `
		INSERT INTO kpi_observations (
			snapshot_id, position, period_start, week_id, period_range, category,
			kpi_id, display_name, minimum, target, actual, comment
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	latestSnapshotQuery = `SELECT id, created_at FROM kpi_snapshots ORDER BY created_at DESC LIMIT 1`

	pruneObservationsQuery = `
		DELETE FROM kpi_observations
		WHERE snapshot_id NOT IN (
			SELECT id FROM kpi_snapshots ORDER BY created_at DESC LIMIT ?
		)`

	pruneSnapshotsQuery = `
		DELETE FROM kpi_snapshots
		WHERE id NOT IN (
			SELECT id FROM kpi_snapshots ORDER BY created_at DESC LIMIT ?
		)`

	selectObservationsQuery = `
		SELECT position, period_start, week_id, period_range, category,
			kpi_id, display_name, minimum, target, actual, comment
		FROM kpi_observations
		WHERE snapshot_id = ?
		ORDER BY position`
)

func (s *defaultStore) Save(ctx context.Context, records []store.ObservationRecord) (*store.Snapshot, error) {
	snap := &store.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Records:   records,
	}

	err := duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		return s.save(ctx, snap)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *defaultStore) save(ctx context.Context, snap *store.Snapshot) error {
	tx := duckdb.GetTransaction(ctx)
	if tx == nil {
		return fmt.Errorf("snapshot must be written within a transaction")
	}

	if _, err := tx.ExecContext(ctx, insertSnapshotQuery, snap.ID, snap.CreatedAt, len(snap.Records)); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if len(snap.Records) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, insertObservationQuery)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range snap.Records {
		_, err = stmt.ExecContext(ctx,
			snap.ID,
			i,
			r.PeriodStart,
			r.WeekID,
			r.PeriodRange,
			r.Category,
			r.KPIID,
			r.DisplayName,
			r.Minimum,
			r.Target,
			r.Actual,
			r.Comment,
		)
		if err != nil {
			return fmt.Errorf("insert observation %d: %w", i, err)
		}
	}
	return nil
}

// Latest returns the newest snapshot, or nil when none has been saved yet.
func (s *defaultStore) Latest(ctx context.Context) (*store.Snapshot, error) {
	var snap store.Snapshot
	err := s.db.QueryRowContext(ctx, latestSnapshotQuery).Scan(&snap.ID, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, selectObservationsQuery, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close observation rows")
		}
	}(rows)

	snap.Records = make([]store.ObservationRecord, 0)
	for rows.Next() {
		var (
			r                             store.ObservationRecord
			weekID, periodRange, category sql.NullString
			comment                       sql.NullString
			minimum, target, actual       sql.NullFloat64
		)
		if err := rows.Scan(
			&r.Position, &r.PeriodStart, &weekID, &periodRange, &category,
			&r.KPIID, &r.DisplayName, &minimum, &target, &actual, &comment,
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		r.WeekID = weekID.String
		r.PeriodRange = periodRange.String
		r.Category = category.String
		r.Comment = comment.String
		r.Minimum = minimum.Float64
		r.Target = target.Float64
		r.Actual = actual.Float64
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	return &snap, nil
}

func (s *defaultStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	var removed int64
	err := duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		var err error
		removed, err = s.prune(ctx, keep)
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *defaultStore) prune(ctx context.Context, keep int) (int64, error) {
	tx := duckdb.GetTransaction(ctx)
	if tx == nil {
		return 0, fmt.Errorf("prune must run within a transaction")
	}

	// observations first, the subquery still sees the snapshots to keep
	if _, err := tx.ExecContext(ctx, pruneObservationsQuery, keep); err != nil {
		return 0, fmt.Errorf("prune observations: %w", err)
	}
	res, err := tx.ExecContext(ctx, pruneSnapshotsQuery, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}
