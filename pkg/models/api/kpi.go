package api

type KPI struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type Category struct {
	Name string `json:"name"`
	KPIs []KPI  `json:"kpis"`
}

type Observation struct {
	PeriodStart string  `json:"period_start"` // YYYY-MM-DD
	WeekID      string  `json:"week_id"`
	PeriodRange string  `json:"period_range"`
	Category    string  `json:"category"`
	KPIID       string  `json:"kpi_id"`
	DisplayName string  `json:"display_name"`
	Minimum     float64 `json:"minimum"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Comment     string  `json:"comment"`
}

// ObservationInput is a manual entry.
type ObservationInput struct {
	Date        string  `json:"date"`        // YYYY-MM-DD
	Granularity string  `json:"granularity"` // daily or weekly
	Category    string  `json:"category"`
	KPIID       string  `json:"kpi_id"`
	Minimum     float64 `json:"minimum"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Comment     string  `json:"comment"`
}

// Table is a full replacement of the observation table. Cells are strings as
// they come out of a table editor.
type Table struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

type ReplaceResult struct {
	Rows    int `json:"rows"`
	Dropped int `json:"dropped"`
}

type ResetResult struct {
	Rows int `json:"rows"`
}

type SeriesPoint struct {
	Bucket      string  `json:"bucket"`
	PeriodLabel string  `json:"period_label"`
	DisplayName string  `json:"display_name"`
	Minimum     float64 `json:"minimum"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Samples     int     `json:"samples"`
}

type Series struct {
	DisplayName string        `json:"display_name"`
	Points      []SeriesPoint `json:"points"`
}

type Alert struct {
	PeriodStart string  `json:"period_start"`
	KPIID       string  `json:"kpi_id"`
	DisplayName string  `json:"display_name"`
	Minimum     float64 `json:"minimum"`
	Target      float64 `json:"target"`
	Actual      float64 `json:"actual"`
	Comment     string  `json:"comment"`
}

type Card struct {
	KPIID   string  `json:"kpi_id"`
	Label   string  `json:"label"`
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Delta   float64 `json:"delta"`
	HasData bool    `json:"has_data"`
}

type Overview struct {
	Mode       string   `json:"mode"`
	Month      string   `json:"month,omitempty"`
	WindowDays int      `json:"window_days"`
	Series     []Series `json:"series"`
	Alerts     []Alert  `json:"alerts"`
}
