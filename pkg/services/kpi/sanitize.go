package kpi

import "github.com/unsovich/BBDashboard/pkg/models/domain"

// Sanitize coerces rows into observations and drops every row whose date or
// numeric fields cannot be parsed or whose kpi id or display name is empty.
// Row order is preserved. It returns the kept observations and the number of dropped rows.
func Sanitize(rows []domain.ObservationRow) ([]domain.Observation, int) {
	observations := make([]domain.Observation, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		obs, err := ParseRow(row)
		if err != nil {
			dropped++
			continue
		}
		observations = append(observations, obs)
	}
	return observations, dropped
}
