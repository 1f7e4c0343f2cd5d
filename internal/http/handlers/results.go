// Package handlers contains the HTTP surface for result triage: order
// entry, result completion, classification, the pending worklist, TAT
// reporting and CSV export.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openclinic/clinic-ops/internal/results"
	"github.com/openclinic/clinic-ops/internal/triage"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

// ResultsHandler handles HTTP requests for diagnostic result records.
type ResultsHandler struct {
	repo    *results.Repository
	service *results.Service
	logger  *logging.Logger
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(repo *results.Repository, service *results.Service, logger *logging.Logger) *ResultsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsHandler{repo: repo, service: service, logger: logger}
}

// CreateOrderRequest is the body for POST /results/orders.
type CreateOrderRequest struct {
	PatientID string            `json:"patient_id"`
	Kind      triage.RecordKind `json:"kind"`
}

// CreateOrder handles POST /results/orders.
func (h *ResultsHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" {
		http.Error(w, "patient_id is required", http.StatusBadRequest)
		return
	}
	switch req.Kind {
	case triage.KindLab, triage.KindXray, triage.KindUltrasound:
	default:
		http.Error(w, "kind must be lab, xray or ultrasound", http.StatusBadRequest)
		return
	}

	rec, err := h.repo.CreateOrder(r.Context(), req.PatientID, req.Kind, time.Now())
	if err != nil {
		h.logger.Error("failed to create order", "error", err)
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	h.logger.Info("order created", "id", rec.ID, "kind", rec.Kind)
	writeJSON(w, http.StatusCreated, rec)
}

// CompleteLabRequest is the body for POST /results/orders/{id}/lab.
// Panels is passed through as an opaque blob: malformed payloads are still
// stored, and interpretation degrades to "review manually" at read time.
type CompleteLabRequest struct {
	Panels json.RawMessage `json:"panels"`
}

// CompleteLab handles POST /results/orders/{id}/lab.
func (h *ResultsHandler) CompleteLab(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	var req CompleteLabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.repo.CompleteLab(r.Context(), id, req.Panels, time.Now()); err != nil {
		h.respondRepoError(w, "complete lab order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteImagingRequest is the body for POST /results/orders/{id}/imaging.
type CompleteImagingRequest struct {
	Findings   string `json:"findings"`
	Impression string `json:"impression"`
}

// CompleteImaging handles POST /results/orders/{id}/imaging.
func (h *ResultsHandler) CompleteImaging(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	var req CompleteImagingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.repo.CompleteImaging(r.Context(), id, req.Findings, req.Impression, time.Now()); err != nil {
		h.respondRepoError(w, "complete imaging order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetClassification handles GET /results/orders/{id}/classification.
func (h *ResultsHandler) GetClassification(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	classified, err := h.service.Classify(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, "classify record", err)
		return
	}
	writeJSON(w, http.StatusOK, classified)
}

// Worklist handles GET /results/worklist: pending orders with aging.
func (h *ResultsHandler) Worklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.PendingWorklist(r.Context())
	if err != nil {
		h.logger.Error("failed to build worklist", "error", err)
		http.Error(w, "failed to build worklist", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// tatEntry renders one kind's turnaround mean, with "no data" for kinds
// that had no valid samples.
type tatEntry struct {
	MeanDays any `json:"mean_days"`
	Samples  int `json:"samples"`
}

// TATReport handles GET /results/reports/tat?since=RFC3339.
func (h *ResultsHandler) TATReport(w http.ResponseWriter, r *http.Request) {
	since := time.Now().AddDate(0, -1, 0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "since must be RFC3339", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	summary, err := h.service.TurnaroundReport(r.Context(), since)
	if err != nil {
		h.logger.Error("failed to build TAT report", "error", err)
		http.Error(w, "failed to build TAT report", http.StatusInternalServerError)
		return
	}

	report := make(map[triage.RecordKind]tatEntry, len(triage.Kinds()))
	for _, kind := range triage.Kinds() {
		if mean, ok := summary.Mean(kind); ok {
			report[kind] = tatEntry{MeanDays: mean, Samples: summary.Kinds[kind].Samples}
		} else {
			report[kind] = tatEntry{MeanDays: "no data"}
		}
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportCSV handles GET /results/export.csv.
func (h *ResultsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	if err := h.service.WriteCSV(r.Context(), w); err != nil {
		// headers may already be gone; just log
		h.logger.Error("csv export failed", "error", err)
	}
}

func (h *ResultsHandler) respondRepoError(w http.ResponseWriter, verb string, err error) {
	if errors.Is(err, results.ErrNotFound) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	h.logger.Error("failed to "+verb, "error", err)
	http.Error(w, "failed to "+verb, http.StatusInternalServerError)
}

func recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
