package store

import "time"

type ObservationRecord struct {
	Position    int
	PeriodStart time.Time
	WeekID      string
	PeriodRange string
	Category    string
	KPIID       string
	DisplayName string
	Minimum     float64
	Target      float64
	Actual      float64
	Comment     string
}

type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Records   []ObservationRecord
}
