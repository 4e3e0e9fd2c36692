package domain

import (
	"math"
	"time"
)

type Granularity string

const (
	GranularityDaily  Granularity = "daily"
	GranularityWeekly Granularity = "weekly"
)

// Column names of the observation table, in export order.
const (
	ColumnPeriodStart = "period_start"
	ColumnWeekID      = "week_id"
	ColumnPeriodRange = "period_range"
	ColumnCategory    = "category"
	ColumnKPIID       = "kpi_id"
	ColumnDisplayName = "display_name"
	ColumnMinimum     = "minimum"
	ColumnTarget      = "target"
	ColumnActual      = "actual"
	ColumnComment     = "comment"
)

// Columns is the fixed column schema of the observation table.
var Columns = []string{
	ColumnPeriodStart,
	ColumnWeekID,
	ColumnPeriodRange,
	ColumnCategory,
	ColumnKPIID,
	ColumnDisplayName,
	ColumnMinimum,
	ColumnTarget,
	ColumnActual,
	ColumnComment,
}

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02.01.2006"
)

// Observation is one recorded data point for a KPI at a reporting period.
type Observation struct {
	PeriodStart time.Time // day, or Monday of the ISO week
	WeekID      string    // 2024-W05 or 2024-01-29
	PeriodRange string    // 29.01.2024 – 04.02.2024
	Category    string
	KPIID       string
	DisplayName string
	Minimum     float64
	Target      float64
	Actual      float64
	Comment     string
}

// Valid reports whether the observation satisfies the record invariants.
func (o Observation) Valid() bool {
	if o.PeriodStart.IsZero() || o.KPIID == "" || o.DisplayName == "" {
		return false
	}
	return finite(o.Minimum) && finite(o.Target) && finite(o.Actual)
}

// Below reports whether the actual value fell under the configured floor.
func (o Observation) Below() bool {
	return o.Actual < o.Minimum
}

// ObservationRow is an untyped table row, as produced by a table editor or a CSV line.
// Fields are keyed by the Column* constants.
type ObservationRow map[string]string

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
