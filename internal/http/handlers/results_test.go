package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/clinic-ops/internal/results"
	"github.com/openclinic/clinic-ops/internal/triage"
)

type stubStore struct {
	records []triage.ResultRecord
}

func (s *stubStore) GetByID(ctx context.Context, id uuid.UUID) (*triage.ResultRecord, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, results.ErrNotFound
}

func (s *stubStore) ListPending(ctx context.Context) ([]triage.ResultRecord, error) {
	var out []triage.ResultRecord
	for _, rec := range s.records {
		if rec.Status == triage.StatusPending {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubStore) ListCompletedSince(ctx context.Context, since time.Time) ([]triage.ResultRecord, error) {
	var out []triage.ResultRecord
	for _, rec := range s.records {
		if rec.CompletedAt != nil && !rec.CompletedAt.Before(since) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubStore) ListAll(ctx context.Context) ([]triage.ResultRecord, error) {
	return s.records, nil
}

var handlerSLA = triage.SLATable{triage.KindLab: 7, triage.KindXray: 3, triage.KindUltrasound: 5}

func newTestHandler(t *testing.T, store *stubStore, now time.Time) *ResultsHandler {
	t.Helper()
	engine := triage.NewEngine(nil, triage.NewImagingClassifier([]string{"no abnormality detected"}))
	svc := results.NewService(store, engine, handlerSLA, nil, nil).
		WithClock(func() time.Time { return now })

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := results.NewRepository(db, nil)

	return NewResultsHandler(repo, svc, nil)
}

func testRouter(h *ResultsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/results/orders/{id}/classification", h.GetClassification)
	r.Get("/results/worklist", h.Worklist)
	r.Get("/results/reports/tat", h.TATReport)
	r.Get("/results/export.csv", h.ExportCSV)
	return r
}

func TestGetClassification(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	rec := triage.ResultRecord{
		ID: uuid.New(), PatientID: "P-9", Kind: triage.KindLab,
		Status: triage.StatusCompleted, RequestedAt: now.Add(-26 * time.Hour), CompletedAt: &done,
		Panels: map[string]map[string]string{"Urine Analysis": {"Protein": "++"}},
	}
	h := newTestHandler(t, &stubStore{records: []triage.ResultRecord{rec}}, now)

	req := httptest.NewRequest(http.MethodGet, "/results/orders/"+rec.ID.String()+"/classification", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Classification triage.Classification `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Classification.IsAbnormal)
	assert.False(t, body.Classification.IsCritical)
	require.Len(t, body.Classification.Findings, 1)
	assert.Equal(t, "moderate proteinuria", body.Classification.Findings[0].Message)
}

func TestGetClassificationNotFound(t *testing.T) {
	h := newTestHandler(t, &stubStore{}, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/results/orders/"+uuid.NewString()+"/classification", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/results/orders/not-a-uuid/classification", nil)
	w = httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorklist(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	store := &stubStore{records: []triage.ResultRecord{
		{ID: uuid.New(), Kind: triage.KindLab, Status: triage.StatusPending, RequestedAt: now.AddDate(0, 0, -10)},
	}}
	h := newTestHandler(t, store, now)

	req := httptest.NewRequest(http.MethodGet, "/results/worklist", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count   int `json:"count"`
		Entries []struct {
			Aging triage.AgingInfo `json:"aging"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, 10, body.Entries[0].Aging.DaysOld)
	assert.True(t, body.Entries[0].Aging.IsOverdue)
}

func TestTATReportRendersNoData(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	requested := now.AddDate(0, 0, -6)
	done := requested.Add(3 * 24 * time.Hour)
	store := &stubStore{records: []triage.ResultRecord{
		{ID: uuid.New(), Kind: triage.KindXray, Status: triage.StatusCompleted, RequestedAt: requested, CompletedAt: &done},
	}}
	h := newTestHandler(t, store, now)

	req := httptest.NewRequest(http.MethodGet, "/results/reports/tat?since=2026-06-01T00:00:00Z", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]struct {
		MeanDays any `json:"mean_days"`
		Samples  int `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["xray"].MeanDays)
	assert.Equal(t, "no data", body["lab"].MeanDays)
	assert.Equal(t, "no data", body["ultrasound"].MeanDays)
}

func TestTATReportRejectsBadSince(t *testing.T) {
	h := newTestHandler(t, &stubStore{}, time.Now())
	req := httptest.NewRequest(http.MethodGet, "/results/reports/tat?since=yesterday", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCSV(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	store := &stubStore{records: []triage.ResultRecord{
		{
			ID: uuid.New(), PatientID: "P-3", Kind: triage.KindLab,
			Status: triage.StatusCompleted, RequestedAt: now.Add(-24 * time.Hour), CompletedAt: &done,
			Panels: map[string]map[string]string{"Hemoglobin (HB)": {"Hemoglobin Level": "5.5"}},
		},
	}}
	h := newTestHandler(t, store, now)

	req := httptest.NewRequest(http.MethodGet, "/results/export.csv", nil)
	w := httptest.NewRecorder()
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "life-threatening anemia")
}

func TestCreateOrderValidation(t *testing.T) {
	h := newTestHandler(t, &stubStore{}, time.Now())
	r := chi.NewRouter()
	r.Post("/results/orders", h.CreateOrder)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing patient", `{"kind":"lab"}`, http.StatusBadRequest},
		{"bad kind", `{"patient_id":"P-1","kind":"mri"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/results/orders", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
