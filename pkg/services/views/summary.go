package views

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/alerts"
)

// CardSpec names a KPI shown as a summary card.
type CardSpec struct {
	KPIID string
	Label string
}

// SMMCards are the engagement and conversion cards of the SMM page.
var SMMCards = []CardSpec{
	{KPIID: "SMM.ER", Label: "Engagement Rate"},
	{KPIID: "SMM.SHARE", Label: "Share Rate"},
	{KPIID: "SMM.CTR", Label: "CTR (Клики)"},
	{KPIID: "SMM.DCR", Label: "Conv. to Donate"},
}

// Summarize averages actual and target per card over the last windowDays days.
func Summarize(observations []domain.Observation, specs []CardSpec, windowDays int, now time.Time) []domain.Card {
	from, to := alerts.Window(now, windowDays)

	actual := make(map[string][]float64, len(specs))
	target := make(map[string][]float64, len(specs))
	for _, o := range observations {
		if !o.Valid() || !alerts.InWindow(o, from, to) {
			continue
		}
		actual[o.KPIID] = append(actual[o.KPIID], o.Actual)
		target[o.KPIID] = append(target[o.KPIID], o.Target)
	}

	cards := make([]domain.Card, 0, len(specs))
	for _, spec := range specs {
		card := domain.Card{KPIID: spec.KPIID, Label: spec.Label}
		if values := actual[spec.KPIID]; len(values) > 0 {
			card.HasData = true
			card.Actual = stat.Mean(values, nil)
			card.Target = stat.Mean(target[spec.KPIID], nil)
			card.Delta = card.Actual - card.Target
		}
		cards = append(cards, card)
	}
	return cards
}
