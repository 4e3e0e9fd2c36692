package views

import (
	"fmt"
	"time"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/alerts"
)

const (
	NoDeviations = "За последние %d дней критических отклонений не зафиксировано."
	NoData       = "Нет данных за выбранный период."
)

func CatalogReport(categories []domain.Category) *domain.Report {
	report := &domain.Report{Title: "KPI catalog"}
	for _, c := range categories {
		summary := make(map[string]interface{}, len(c.KPIs))
		for _, k := range c.KPIs {
			summary[k.ID] = k.DisplayName
		}
		report.Sections = append(report.Sections, domain.ReportSection{
			Title:   c.Name,
			Summary: summary,
		})
	}
	return report
}

// AlertsReport renders the attention panel for the window ending at now.
func AlertsReport(found []domain.Alert, windowDays int, now time.Time) *domain.Report {
	from, to := alerts.Window(now, windowDays)

	rows := make([]domain.ReportRow, 0, len(found))
	for _, a := range found {
		rows = append(rows, domain.ReportRow{
			Period:  a.PeriodStart.Format(domain.DisplayDateLayout),
			Name:    a.DisplayName,
			Minimum: a.Minimum,
			Target:  a.Target,
			Actual:  a.Actual,
			Comment: a.Comment,
		})
	}

	return &domain.Report{
		Title:  "Зона внимания",
		Period: domain.TimePeriod{Start: from, End: to, Duration: windowDays},
		Sections: []domain.ReportSection{{
			Title:   "Отклонения",
			Summary: map[string]interface{}{"Below minimum": len(found)},
			Rows:    rows,
			Empty:   fmt.Sprintf(NoDeviations, windowDays),
		}},
	}
}

// SeriesReport renders one section per KPI. Series without points keep their
// section and show the no data placeholder.
func SeriesReport(series []domain.Series, mode domain.Mode, month *domain.MonthFilter) *domain.Report {
	report := &domain.Report{Title: "Динамика KPI"}
	if month != nil {
		start := time.Date(month.Year, month.Month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		report.Title = fmt.Sprintf("Динамика KPI, %s", month)
		report.Period = domain.TimePeriod{Start: start, End: end, Duration: end.Day()}
	}

	if len(series) == 0 {
		report.Sections = append(report.Sections, domain.ReportSection{Title: string(mode), Empty: NoData})
		return report
	}

	for _, s := range series {
		rows := make([]domain.ReportRow, 0, len(s.Points))
		for _, p := range s.Points {
			rows = append(rows, domain.ReportRow{
				Period:  p.PeriodLabel,
				Name:    p.DisplayName,
				Minimum: p.Minimum,
				Target:  p.Target,
				Actual:  p.Actual,
			})
		}
		report.Sections = append(report.Sections, domain.ReportSection{
			Title:   s.DisplayName,
			Summary: map[string]interface{}{"Buckets": len(rows)},
			Rows:    rows,
			Empty:   NoData,
		})
	}
	return report
}

func HistoryReport(observations []domain.Observation) *domain.Report {
	rows := make([]domain.ReportRow, 0, len(observations))
	for _, o := range observations {
		rows = append(rows, domain.ReportRow{
			Period:  o.PeriodStart.Format(domain.DisplayDateLayout),
			Name:    o.DisplayName,
			Minimum: o.Minimum,
			Target:  o.Target,
			Actual:  o.Actual,
			Comment: o.Comment,
		})
	}
	return &domain.Report{
		Title: "История изменений",
		Sections: []domain.ReportSection{{
			Title: "Observations",
			Rows:  rows,
			Empty: NoData,
		}},
	}
}
