package adapters

import (
	"github.com/unsovich/BBDashboard/pkg/models/api"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/models/store"
)

func MapDomainObservationToStoreRecord(o domain.Observation, position int) store.ObservationRecord {
	return store.ObservationRecord{
		Position:    position,
		PeriodStart: o.PeriodStart,
		WeekID:      o.WeekID,
		PeriodRange: o.PeriodRange,
		Category:    o.Category,
		KPIID:       o.KPIID,
		DisplayName: o.DisplayName,
		Minimum:     o.Minimum,
		Target:      o.Target,
		Actual:      o.Actual,
		Comment:     o.Comment,
	}
}

func MapDomainObservationsToStoreRecords(observations []domain.Observation) []store.ObservationRecord {
	records := make([]store.ObservationRecord, 0, len(observations))
	for i, o := range observations {
		records = append(records, MapDomainObservationToStoreRecord(o, i))
	}
	return records
}

func MapStoreRecordToDomainObservation(r store.ObservationRecord) domain.Observation {
	return domain.Observation{
		PeriodStart: r.PeriodStart,
		WeekID:      r.WeekID,
		PeriodRange: r.PeriodRange,
		Category:    r.Category,
		KPIID:       r.KPIID,
		DisplayName: r.DisplayName,
		Minimum:     r.Minimum,
		Target:      r.Target,
		Actual:      r.Actual,
		Comment:     r.Comment,
	}
}

func MapStoreRecordsToDomainObservations(records []store.ObservationRecord) []domain.Observation {
	observations := make([]domain.Observation, 0, len(records))
	for _, r := range records {
		observations = append(observations, MapStoreRecordToDomainObservation(r))
	}
	return observations
}

func MapDomainObservationToApi(o domain.Observation) api.Observation {
	return api.Observation{
		PeriodStart: o.PeriodStart.Format(domain.DateLayout),
		WeekID:      o.WeekID,
		PeriodRange: o.PeriodRange,
		Category:    o.Category,
		KPIID:       o.KPIID,
		DisplayName: o.DisplayName,
		Minimum:     o.Minimum,
		Target:      o.Target,
		Actual:      o.Actual,
		Comment:     o.Comment,
	}
}

func MapDomainObservationsToApi(observations []domain.Observation) []api.Observation {
	out := make([]api.Observation, 0, len(observations))
	for _, o := range observations {
		out = append(out, MapDomainObservationToApi(o))
	}
	return out
}

func MapApiTableToDomainRows(table api.Table) []domain.ObservationRow {
	rows := make([]domain.ObservationRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make(domain.ObservationRow, len(r))
		for k, v := range r {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}
