package adapters

import (
	"github.com/unsovich/BBDashboard/pkg/models/api"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
)

func MapDomainCatalogToApi(categories []domain.Category) []api.Category {
	out := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.Category{Name: c.Name, KPIs: MapDomainKPIsToApi(c.KPIs)})
	}
	return out
}

func MapDomainKPIsToApi(kpis []domain.KPI) []api.KPI {
	out := make([]api.KPI, 0, len(kpis))
	for _, k := range kpis {
		out = append(out, api.KPI{ID: k.ID, DisplayName: k.DisplayName})
	}
	return out
}

func MapDomainSeriesPointsToApi(points []domain.SeriesPoint) []api.SeriesPoint {
	out := make([]api.SeriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.SeriesPoint{
			Bucket:      p.Bucket,
			PeriodLabel: p.PeriodLabel,
			DisplayName: p.DisplayName,
			Minimum:     p.Minimum,
			Target:      p.Target,
			Actual:      p.Actual,
			Samples:     p.Samples,
		})
	}
	return out
}

func MapDomainSeriesToApi(series []domain.Series) []api.Series {
	out := make([]api.Series, 0, len(series))
	for _, s := range series {
		out = append(out, api.Series{
			DisplayName: s.DisplayName,
			Points:      MapDomainSeriesPointsToApi(s.Points),
		})
	}
	return out
}

func MapDomainAlertsToApi(alerts []domain.Alert) []api.Alert {
	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, api.Alert{
			PeriodStart: a.PeriodStart.Format(domain.DateLayout),
			KPIID:       a.KPIID,
			DisplayName: a.DisplayName,
			Minimum:     a.Minimum,
			Target:      a.Target,
			Actual:      a.Actual,
			Comment:     a.Comment,
		})
	}
	return out
}

func MapDomainCardsToApi(cards []domain.Card) []api.Card {
	out := make([]api.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, api.Card{
			KPIID:   c.KPIID,
			Label:   c.Label,
			Actual:  c.Actual,
			Target:  c.Target,
			Delta:   c.Delta,
			HasData: c.HasData,
		})
	}
	return out
}

func MapDomainOverviewToApi(o domain.Overview) api.Overview {
	out := api.Overview{
		Mode:       string(o.Mode),
		WindowDays: o.WindowDays,
		Series:     MapDomainSeriesToApi(o.Series),
		Alerts:     MapDomainAlertsToApi(o.Alerts),
	}
	if o.Month != nil {
		out.Month = o.Month.String()
	}
	return out
}

func MapDomainReplaceResultToApi(r domain.ReplaceResult) api.ReplaceResult {
	return api.ReplaceResult{Rows: r.Rows, Dropped: r.Dropped}
}
