package handlers

import (
	"net/http"
	"time"

	"github.com/openclinic/clinic-ops/internal/kpi"
	"github.com/openclinic/clinic-ops/internal/results"
	"github.com/openclinic/clinic-ops/internal/triage"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

// DashboardHandler serves the KPI rollup for the admin dashboard.
type DashboardHandler struct {
	service *results.Service
	cache   *kpi.Cache
	sla     triage.SLATable
	logger  *logging.Logger
	now     func() time.Time
}

// NewDashboardHandler creates a dashboard handler. cache may be nil, in
// which case every request recomputes the rollup.
func NewDashboardHandler(service *results.Service, cache *kpi.Cache, sla triage.SLATable, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{
		service: service,
		cache:   cache,
		sla:     sla,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (h *DashboardHandler) WithClock(now func() time.Time) *DashboardHandler {
	h.now = now
	return h
}

// GetKPIs handles GET /admin/dashboard/kpis.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if rollup, ok, err := h.cache.Get(ctx); err == nil && ok {
			writeJSON(w, http.StatusOK, rollup)
			return
		} else if err != nil {
			// cache trouble never blocks the dashboard
			h.logger.Warn("kpi cache read failed", "error", err)
		}
	}

	classified, err := h.service.ClassifyAll(ctx)
	if err != nil {
		h.logger.Error("failed to classify records for dashboard", "error", err)
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}
	rollup := kpi.Compute(classified, h.sla, h.now())

	if h.cache != nil {
		if err := h.cache.Set(ctx, rollup); err != nil {
			h.logger.Warn("kpi cache write failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, rollup)
}
