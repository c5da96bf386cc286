package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// memoryRepo is an in-memory stand-in for the file-backed alert repository.
type memoryRepo struct {
	alerts []domain.AlertRecord
}

func (r *memoryRepo) Save(alert domain.AlertRecord) error {
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *memoryRepo) Get(id string) (domain.AlertRecord, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.AlertRecord{}, errors.New("not found")
}

func (r *memoryRepo) List() ([]domain.AlertRecord, error) {
	return r.alerts, nil
}

// memoryIndex records queries so tests can assert the catalog is preferred.
type memoryIndex struct {
	summaries  []domain.AlertSummary
	lastFilter domain.AlertFilter
}

func (i *memoryIndex) Index(_ context.Context, _ domain.AlertRecord) error { return nil }

func (i *memoryIndex) Query(_ context.Context, filter domain.AlertFilter) ([]domain.AlertSummary, error) {
	i.lastFilter = filter
	return i.summaries, nil
}

type stubExporter struct{}

func (stubExporter) ExportAlert(domain.AlertRecord) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func handlerAlert(id string, severity domain.Severity, risk float64) domain.AlertRecord {
	return domain.AlertRecord{
		ID:          id,
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Severity:    severity,
		Title:       severity.Title() + " risk exposure detected",
		Analysis:    domain.AnalysisResult{RiskScore: risk},
	}
}

func alertsRouter(h *AlertsHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/alerts", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/api/alerts/{id}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/alerts/{id}/pdf", h.HandlePDF).Methods(http.MethodGet)
	return r
}

func TestHandleListFromRepository(t *testing.T) {
	repo := &memoryRepo{alerts: []domain.AlertRecord{
		handlerAlert("a-1", domain.SeverityHigh, 5.5),
		handlerAlert("a-2", domain.SeverityLow, 1.0),
	}}
	router := alertsRouter(NewAlertsHandler(repo, nil, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Alerts []domain.AlertSummary `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 2)
	assert.Equal(t, "a-1", body.Alerts[0].ID)
}

func TestHandleListSeverityFilterFallback(t *testing.T) {
	repo := &memoryRepo{alerts: []domain.AlertRecord{
		handlerAlert("a-1", domain.SeverityHigh, 5.5),
		handlerAlert("a-2", domain.SeverityLow, 1.0),
		handlerAlert("a-3", domain.SeverityHigh, 6.0),
	}}
	router := alertsRouter(NewAlertsHandler(repo, nil, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts?severity=high&limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Alerts []domain.AlertSummary `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, domain.SeverityHigh, body.Alerts[0].Severity)
}

func TestHandleListPrefersCatalog(t *testing.T) {
	index := &memoryIndex{summaries: []domain.AlertSummary{{ID: "from-catalog"}}}
	router := alertsRouter(NewAlertsHandler(&memoryRepo{}, index, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts?severity=critical&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SeverityCritical, index.lastFilter.Severity)
	assert.Equal(t, 10, index.lastFilter.Limit)

	var body struct {
		Alerts []domain.AlertSummary `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "from-catalog", body.Alerts[0].ID)
}

func TestHandleGet(t *testing.T) {
	repo := &memoryRepo{alerts: []domain.AlertRecord{handlerAlert("a-1", domain.SeverityMedium, 4.25)}}
	router := alertsRouter(NewAlertsHandler(repo, nil, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts/a-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var alert domain.AlertRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alert))
	assert.Equal(t, "a-1", alert.ID)
	assert.Equal(t, domain.SeverityMedium, alert.Severity)
}

func TestHandleGetUnknownAlert(t *testing.T) {
	router := alertsRouter(NewAlertsHandler(&memoryRepo{}, nil, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePDF(t *testing.T) {
	repo := &memoryRepo{alerts: []domain.AlertRecord{handlerAlert("a-1", domain.SeverityMedium, 4.25)}}
	router := alertsRouter(NewAlertsHandler(repo, nil, stubExporter{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/alerts/a-1/pdf", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "alert_a-1.pdf")
	assert.Equal(t, "%PDF-stub", rec.Body.String())
}
