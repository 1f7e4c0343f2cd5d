package results

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/openclinic/clinic-ops/internal/observability/metrics"
	"github.com/openclinic/clinic-ops/internal/triage"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

var tracer = otel.Tracer("clinic/results")

// Store is the subset of the repository the service needs; tests inject
// stubs through it.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*triage.ResultRecord, error)
	ListPending(ctx context.Context) ([]triage.ResultRecord, error)
	ListCompletedSince(ctx context.Context, since time.Time) ([]triage.ResultRecord, error)
	ListAll(ctx context.Context) ([]triage.ResultRecord, error)
}

// Service composes the record store with the triage engine. All derived
// values (classification, aging, TAT) are computed per call from the current
// record snapshot; nothing derived is stored.
type Service struct {
	store   Store
	engine  *triage.Engine
	sla     triage.SLATable
	metrics *metrics.TriageMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewService wires the service. metrics may be nil; now may be nil and
// defaults to time.Now (injectable for tests).
func NewService(store Store, engine *triage.Engine, sla triage.SLATable, m *metrics.TriageMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		engine:  engine,
		sla:     sla,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ClassifiedRecord pairs a record with its derived classification.
type ClassifiedRecord struct {
	Record         triage.ResultRecord   `json:"record"`
	Classification triage.Classification `json:"classification"`
}

// Classify loads one record and derives its severity classification.
func (s *Service) Classify(ctx context.Context, id uuid.UUID) (*ClassifiedRecord, error) {
	ctx, span := tracer.Start(ctx, "results.classify")
	defer span.End()
	span.SetAttributes(attribute.String("record.id", id.String()))

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := s.now()
	classification := s.engine.Classify(*rec)
	s.metrics.ObserveClassifyLatency(s.now().Sub(start).Seconds())
	s.metrics.ObserveClassified(string(rec.Kind), classification.OverallSeverity.String())
	span.SetAttributes(attribute.String("triage.severity", classification.OverallSeverity.String()))

	if classification.IsCritical {
		s.logger.Warn("critical result flagged",
			"record_id", rec.ID,
			"patient_id", rec.PatientID,
			"findings", len(classification.Findings),
		)
	}
	return &ClassifiedRecord{Record: *rec, Classification: classification}, nil
}

// WorklistEntry is one pending order with its aging state.
type WorklistEntry struct {
	Record triage.ResultRecord `json:"record"`
	Aging  triage.AgingInfo    `json:"aging"`
}

// PendingWorklist returns pending orders oldest first, each with aging and
// overdue status against the clinic SLA table.
func (s *Service) PendingWorklist(ctx context.Context) ([]WorklistEntry, error) {
	ctx, span := tracer.Start(ctx, "results.pending_worklist")
	defer span.End()

	records, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]WorklistEntry, 0, len(records))
	overdue := make(map[triage.RecordKind]int)
	for _, rec := range records {
		info, ok := triage.Age(rec, s.sla, now)
		if !ok {
			continue
		}
		if info.IsOverdue {
			overdue[rec.Kind]++
		}
		entries = append(entries, WorklistEntry{Record: rec, Aging: info})
	}
	for _, kind := range triage.Kinds() {
		s.metrics.SetOverduePending(string(kind), overdue[kind])
	}
	span.SetAttributes(attribute.Int("worklist.size", len(entries)))
	return entries, nil
}

// TurnaroundReport aggregates per-kind mean TAT over records completed
// since the given time.
func (s *Service) TurnaroundReport(ctx context.Context, since time.Time) (triage.TATSummary, error) {
	ctx, span := tracer.Start(ctx, "results.turnaround_report")
	defer span.End()

	records, err := s.store.ListCompletedSince(ctx, since)
	if err != nil {
		return triage.TATSummary{}, fmt.Errorf("results: turnaround report: %w", err)
	}
	summary := triage.Turnaround(records)
	span.SetAttributes(attribute.Int("tat.kinds", len(summary.Kinds)))
	return summary, nil
}

// ClassifyAll loads every record and classifies it, for dashboard rollups.
func (s *Service) ClassifyAll(ctx context.Context) ([]ClassifiedRecord, error) {
	ctx, span := tracer.Start(ctx, "results.classify_all")
	defer span.End()

	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClassifiedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, ClassifiedRecord{Record: rec, Classification: s.engine.Classify(rec)})
	}
	return out, nil
}
