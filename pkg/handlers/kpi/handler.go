package kpi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/unsovich/BBDashboard/pkg/adapters"
	"github.com/unsovich/BBDashboard/pkg/models/api"
	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/dashboard"
	kpiservice "github.com/unsovich/BBDashboard/pkg/services/kpi"
)

const exportFilename = "kpi_export.csv"

type Handler struct {
	dashboard dashboard.Dashboard
}

func NewHandler(d dashboard.Dashboard) *Handler {
	return &Handler{dashboard: d}
}

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainCatalogToApi(h.dashboard.Catalog(r.Context())))
}

func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	options := h.dashboard.Options(r.Context(), category)
	writeJSON(w, r, http.StatusOK, adapters.MapDomainKPIsToApi(options))
}

func (h *Handler) ListObservations(w http.ResponseWriter, r *http.Request) {
	history := h.dashboard.History(r.Context(), r.URL.Query()["name"])
	writeJSON(w, r, http.StatusOK, adapters.MapDomainObservationsToApi(history))
}

func (h *Handler) AddObservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var input api.ObservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "malformed observation body", http.StatusBadRequest)
		return
	}

	entry, err := entryFromInput(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obs, err := h.dashboard.AddObservation(ctx, entry)
	switch {
	case errors.Is(err, kpiservice.ErrUnknownKPI),
		errors.Is(err, kpiservice.ErrUnknownCategory),
		errors.Is(err, kpiservice.ErrInvalidObservation):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		logger.Error().Err(err).Str("kpi_id", input.KPIID).Msg("failed to add observation")
		http.Error(w, "failed to add observation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusCreated, adapters.MapDomainObservationToApi(obs))
}

func (h *Handler) ReplaceObservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var table api.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, "malformed table body", http.StatusBadRequest)
		return
	}

	res, err := h.dashboard.ReplaceObservations(ctx, adapters.MapApiTableToDomainRows(table))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to replace observations")
		http.Error(w, "failed to replace observations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDomainReplaceResultToApi(res))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size, err := h.dashboard.Reset(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to reset observations")
		http.Error(w, "failed to reset observations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, api.ResetResult{Rows: size})
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mode, month, ok := parseModeAndMonth(w, query)
	if !ok {
		return
	}

	series := h.dashboard.Series(r.Context(), mode, month, query["name"])
	writeJSON(w, r, http.StatusOK, adapters.MapDomainSeriesToApi(series))
}

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	window, ok := parseWindow(w, r.URL.Query())
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDomainAlertsToApi(h.dashboard.Alerts(r.Context(), window)))
}

func (h *Handler) GetSMMSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := parseWindow(w, r.URL.Query())
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDomainCardsToApi(h.dashboard.SMMSummary(r.Context(), window)))
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	mode, month, ok := parseModeAndMonth(w, r.URL.Query())
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDomainOverviewToApi(h.dashboard.Overview(r.Context(), mode, month)))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := h.dashboard.Export(ctx, &buf); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to export observations")
		http.Error(w, "failed to export observations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write export")
	}
}

func entryFromInput(input api.ObservationInput) (kpiservice.Entry, error) {
	date, err := kpiservice.ParseDate(input.Date)
	if err != nil {
		return kpiservice.Entry{}, fmt.Errorf("invalid 'date': %v", err)
	}

	granularity := domain.Granularity(input.Granularity)
	switch granularity {
	case "":
		granularity = domain.GranularityWeekly
	case domain.GranularityDaily, domain.GranularityWeekly:
	default:
		return kpiservice.Entry{}, fmt.Errorf("invalid 'granularity' %q, expected daily or weekly", input.Granularity)
	}

	return kpiservice.Entry{
		Date:        date,
		Granularity: granularity,
		Category:    input.Category,
		KPIID:       input.KPIID,
		Minimum:     input.Minimum,
		Target:      input.Target,
		Actual:      input.Actual,
		Comment:     input.Comment,
	}, nil
}

func parseModeAndMonth(w http.ResponseWriter, query url.Values) (domain.Mode, *domain.MonthFilter, bool) {
	mode, err := domain.ParseMode(query.Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	month, err := domain.ParseMonth(query.Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	return mode, month, true
}

// parseWindow returns 0 when the parameter is absent, meaning the configured default.
func parseWindow(w http.ResponseWriter, query url.Values) (int, bool) {
	raw := query.Get("window")
	if raw == "" {
		return 0, true
	}
	window, err := strconv.Atoi(raw)
	if err != nil || window <= 0 {
		http.Error(w, "invalid 'window', expected a positive number of days", http.StatusBadRequest)
		return 0, false
	}
	return window, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
