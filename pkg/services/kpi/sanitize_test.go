package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

func row(date, kpiID, name, minimum, target, actual string) domain.ObservationRow {
	return domain.ObservationRow{
		domain.ColumnPeriodStart: date,
		domain.ColumnCategory:    "SMM (Вовлеченность)",
		domain.ColumnKPIID:       kpiID,
		domain.ColumnDisplayName: name,
		domain.ColumnMinimum:     minimum,
		domain.ColumnTarget:      target,
		domain.ColumnActual:      actual,
	}
}

func messyRows() []domain.ObservationRow {
	return []domain.ObservationRow{
		row("2024-03-04", "SMM.ER", "Engagement Rate (ER), %", "2.5", "4", "3.1"),
		row("05.03.2024", "SMM.ER", "Engagement Rate (ER), %", "2,5", "4", " 1.9 "),
		row("2024-03-06 00:00:00", "SMM.CTR", "CTR (Клики на сайт), %", "1", "2", "0.5"),
		row("not a date", "SMM.ER", "Engagement Rate (ER), %", "2.5", "4", "3"),
		row("2024-03-07", "SMM.ER", "Engagement Rate (ER), %", "2.5", "4", "N/A"),
		row("2024-03-08", "SMM.ER", "Engagement Rate (ER), %", "", "4", "3"),
		row("2024-03-09", "SMM.ER", "Engagement Rate (ER), %", "2.5", "NaN", "3"),
		row("2024-03-10", "", "Engagement Rate (ER), %", "2.5", "4", "3"),
		row("2024-03-11", "SMM.ER", "   ", "2.5", "4", "3"),
		{},
	}
}

func TestSanitize_DropsInvalidRows(t *testing.T) {
	observations, dropped := Sanitize(messyRows())

	require.Len(t, observations, 3)
	assert.Equal(t, 7, dropped)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), observations[1].PeriodStart)
	assert.Equal(t, 2.5, observations[1].Minimum)
	assert.Equal(t, 1.9, observations[1].Actual)
	assert.Equal(t, "2024-03-06", observations[2].WeekID)
	assert.Equal(t, "06.03.2024", observations[2].PeriodRange)
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := [][]domain.ObservationRow{
		nil,
		{},
		messyRows(),
		{row("2024-01-01", "FIN.PLAN", "Plan, %", "1e3", "0.1", "-7")},
	}

	for _, rows := range inputs {
		first, _ := Sanitize(rows)
		second, dropped := Sanitize(Rows(first))

		assert.Equal(t, first, second)
		assert.Zero(t, dropped)
		assert.LessOrEqual(t, len(first), len(rows))
	}
}

func TestSanitize_KeepsPeriodIdentifiers(t *testing.T) {
	r := row("2024-01-29", "SMM.ER", "Engagement Rate (ER), %", "2.5", "4", "3")
	r[domain.ColumnWeekID] = "2024-W05"
	r[domain.ColumnPeriodRange] = "29.01.2024 – 04.02.2024"

	observations, dropped := Sanitize([]domain.ObservationRow{r})

	require.Len(t, observations, 1)
	assert.Zero(t, dropped)
	assert.Equal(t, "2024-W05", observations[0].WeekID)
	assert.Equal(t, "29.01.2024 – 04.02.2024", observations[0].PeriodRange)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "3.5", want: 3.5},
		{in: "3,5", want: 3.5},
		{in: " 60000 ", want: 60000},
		{in: "-0.25", want: -0.25},
		{in: "", wantErr: true},
		{in: "N/A", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "1,000.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
