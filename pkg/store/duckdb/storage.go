package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SnapshotTableSchema = `
	CREATE TABLE IF NOT EXISTS kpi_snapshots (
		id VARCHAR PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		row_count INTEGER NOT NULL
	);
`
const ObservationTableSchema = `
	CREATE TABLE IF NOT EXISTS kpi_observations (
		snapshot_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		period_start DATE NOT NULL,
		week_id VARCHAR,
		period_range VARCHAR,
		category VARCHAR,
		kpi_id VARCHAR NOT NULL,
		display_name VARCHAR NOT NULL,
		minimum DOUBLE,
		target DOUBLE,
		actual DOUBLE,
		comment VARCHAR,
		PRIMARY KEY (snapshot_id, position)
	);
`

var bootQueries = []string{
	SnapshotTableSchema,
	ObservationTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
