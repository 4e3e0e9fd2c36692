package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

func TestReporter_Table(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Handle(&domain.Report{
		Title: "Зона внимания",
		Period: domain.TimePeriod{
			Start:    time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			Duration: 30,
		},
		Sections: []domain.ReportSection{{
			Title:   "Отклонения",
			Summary: map[string]interface{}{"Below minimum": 1},
			Rows: []domain.ReportRow{{
				Period:  "11.03.2024",
				Name:    "Engagement Rate (ER), %",
				Minimum: 2.5,
				Target:  4,
				Actual:  2,
				Comment: "low reach",
			}},
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Зона внимания (30 days)")
	assert.Contains(t, out, "Period: 19.02.2024 to 20.03.2024")
	assert.Contains(t, out, "Below minimum: 1")
	assert.Contains(t, out, "| 11.03.2024")
	assert.Contains(t, out, "|       2.50 |       4.00 |       2.00 | low reach")
}

func TestReporter_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Handle(&domain.Report{
		Title:    "Динамика KPI",
		Sections: []domain.ReportSection{{Title: "weekly", Empty: "Нет данных за выбранный период."}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Нет данных за выбранный период.")
	assert.NotContains(t, out, "Period:")
	assert.NotContains(t, out, "+---")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "Вовл…", truncate("Вовлеченность", 5))
}
