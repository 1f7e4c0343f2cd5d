// Package kpi produces dashboard counts over the triaged record set. It is
// a thin consumer of the triage engine's outputs; all numbers here are
// recomputed from record snapshots, never stored as source of truth.
package kpi

import (
	"time"

	"github.com/openclinic/clinic-ops/internal/results"
	"github.com/openclinic/clinic-ops/internal/triage"
)

// Rollup is one dashboard snapshot: record counts by kind, status, derived
// severity and overdue state.
type Rollup struct {
	Total       int                       `json:"total"`
	ByKind      map[triage.RecordKind]int `json:"by_kind"`
	Pending     int                       `json:"pending"`
	Completed   int                       `json:"completed"`
	Abnormal    int                       `json:"abnormal"`
	Critical    int                       `json:"critical"`
	Overdue     int                       `json:"overdue"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// Compute folds a classified batch into dashboard counts. Overdue is
// derived from the pending records' aging against the SLA table at now.
func Compute(classified []results.ClassifiedRecord, sla triage.SLATable, now time.Time) Rollup {
	r := Rollup{
		ByKind:      make(map[triage.RecordKind]int),
		GeneratedAt: now.UTC(),
	}
	for _, cr := range classified {
		rec := cr.Record
		r.Total++
		r.ByKind[rec.Kind]++
		switch rec.Status {
		case triage.StatusPending:
			r.Pending++
			if info, ok := triage.Age(rec, sla, now); ok && info.IsOverdue {
				r.Overdue++
			}
		case triage.StatusCompleted:
			r.Completed++
		}
		if cr.Classification.IsAbnormal {
			r.Abnormal++
		}
		if cr.Classification.IsCritical {
			r.Critical++
		}
	}
	return r
}
