package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

var csvHeader = []string{
	"id", "patient_id", "kind", "status",
	"requested_at", "completed_at",
	"overall_severity", "abnormal", "critical", "flags",
}

// WriteCSV streams every record with its derived flag columns, for the
// export collaborators. Classification is recomputed per row from the
// record snapshot, the same way the detail views derive it.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	classified, err := s.ClassifyAll(ctx)
	if err != nil {
		return fmt.Errorf("results: csv export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("results: csv header: %w", err)
	}
	for _, cr := range classified {
		rec, cls := cr.Record, cr.Classification

		completed := ""
		if rec.CompletedAt != nil {
			completed = rec.CompletedAt.UTC().Format(time.RFC3339)
		}
		flags := make([]string, 0, len(cls.Findings))
		for _, f := range cls.Findings {
			flags = append(flags, fmt.Sprintf("%s/%s: %s", f.Panel, f.Field, f.Message))
		}

		row := []string{
			rec.ID.String(),
			rec.PatientID,
			string(rec.Kind),
			string(rec.Status),
			rec.RequestedAt.UTC().Format(time.RFC3339),
			completed,
			cls.OverallSeverity.String(),
			boolCell(cls.IsAbnormal),
			boolCell(cls.IsCritical),
			strings.Join(flags, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("results: csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("results: csv flush: %w", err)
	}
	s.metrics.ObserveExport()
	return nil
}

func boolCell(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
