package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/kpi"
)

// WriteCSV writes observations with a header row in the fixed column order.
// Dates are ISO-8601.
func WriteCSV(w io.Writer, observations []domain.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(domain.Columns))
	for _, row := range kpi.Rows(observations) {
		for i, column := range domain.Columns {
			record[i] = row[column]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows keyed by header name. Unknown columns are ignored and
// missing ones are left empty; coercion is left to kpi.Sanitize.
func ReadCSV(r io.Reader) ([]domain.ObservationRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ObservationRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	known := make(map[string]bool, len(domain.Columns))
	for _, c := range domain.Columns {
		known[c] = true
	}
	columns := make([]string, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if known[name] {
			columns[i] = name
		}
	}

	rows := make([]domain.ObservationRow, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := make(domain.ObservationRow, len(domain.Columns))
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				row[columns[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
