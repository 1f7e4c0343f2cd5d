// Package results persists diagnostic result records and adapts them for
// the triage engine. The engine itself never touches storage; this package
// is the boundary between the two.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openclinic/clinic-ops/internal/triage"
	"github.com/openclinic/clinic-ops/pkg/logging"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("results: record not found")

// Repository reads and writes result_records rows.
type Repository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewRepository creates a repository backed by database/sql.
func NewRepository(db *sql.DB, logger *logging.Logger) *Repository {
	if db == nil {
		panic("results: db required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Repository{db: db, logger: logger}
}

const recordColumns = `id, patient_id, kind, status, requested_at, completed_at, panels, findings, impression`

// CreateOrder inserts a new pending order.
func (r *Repository) CreateOrder(ctx context.Context, patientID string, kind triage.RecordKind, requestedAt time.Time) (*triage.ResultRecord, error) {
	rec := &triage.ResultRecord{
		ID:          uuid.New(),
		PatientID:   patientID,
		Kind:        kind,
		Status:      triage.StatusPending,
		RequestedAt: requestedAt.UTC(),
	}
	query := `
		INSERT INTO result_records (id, patient_id, kind, status, requested_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.PatientID, rec.Kind, rec.Status, rec.RequestedAt, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("results: insert order: %w", err)
	}
	return rec, nil
}

// CompleteLab stores the lab payload blob and marks the order completed.
// The blob is stored as-is; interpretation happens at read time so a
// malformed payload can never block result entry.
func (r *Repository) CompleteLab(ctx context.Context, id uuid.UUID, panels []byte, completedAt time.Time) error {
	return r.complete(ctx, id, completedAt, panels, "", "")
}

// CompleteImaging stores narrative report text and marks the order completed.
func (r *Repository) CompleteImaging(ctx context.Context, id uuid.UUID, findings, impression string, completedAt time.Time) error {
	return r.complete(ctx, id, completedAt, nil, findings, impression)
}

func (r *Repository) complete(ctx context.Context, id uuid.UUID, completedAt time.Time, panels []byte, findings, impression string) error {
	query := `
		UPDATE result_records
		SET status = $1, completed_at = $2, panels = $3, findings = $4, impression = $5, updated_at = $6
		WHERE id = $7 AND status = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		triage.StatusCompleted, completedAt.UTC(), panels, findings, impression, time.Now().UTC(),
		id, triage.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("results: complete record: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("results: complete record %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID loads one record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*triage.ResultRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM result_records WHERE id = $1`
	rec, err := r.scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("results: get %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("results: get %s: %w", id, err)
	}
	return rec, nil
}

// ListPending returns pending orders, oldest first, for the review worklist.
func (r *Repository) ListPending(ctx context.Context) ([]triage.ResultRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM result_records
		WHERE status = $1
		ORDER BY requested_at ASC
	`
	return r.queryRecords(ctx, query, triage.StatusPending)
}

// ListCompletedSince returns completed records for TAT and KPI aggregation.
func (r *Repository) ListCompletedSince(ctx context.Context, since time.Time) ([]triage.ResultRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM result_records
		WHERE status = $1 AND completed_at >= $2
		ORDER BY completed_at ASC
	`
	return r.queryRecords(ctx, query, triage.StatusCompleted, since.UTC())
}

// ListAll returns every record, newest request first. Dashboard rollups
// consume this in one pass.
func (r *Repository) ListAll(ctx context.Context) ([]triage.ResultRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM result_records ORDER BY requested_at DESC`
	return r.queryRecords(ctx, query)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanRecord(row rowScanner) (*triage.ResultRecord, error) {
	var rec triage.ResultRecord
	var completedAt sql.NullTime
	var panels []byte
	var findings, impression sql.NullString

	if err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.Kind, &rec.Status, &rec.RequestedAt,
		&completedAt, &panels, &findings, &impression,
	); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		rec.CompletedAt = &t
	}
	rec.Panels = triage.ParsePanels(panels)
	rec.Findings = findings.String
	rec.Impression = impression.String

	// Inconsistent rows stay readable; flag them for later correction.
	if rec.Status == triage.StatusPending && rec.CompletedAt != nil {
		r.logger.Warn("data quality: pending record has completion timestamp", "id", rec.ID)
	}
	if rec.CompletedAt != nil && rec.CompletedAt.Before(rec.RequestedAt) {
		r.logger.Warn("data quality: record completed before it was requested", "id", rec.ID)
	}
	return &rec, nil
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...any) ([]triage.ResultRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("results: query records: %w", err)
	}
	defer rows.Close()

	var records []triage.ResultRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("results: scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results: iterate records: %w", err)
	}
	return records, nil
}
