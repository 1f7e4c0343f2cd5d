package triage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordKind identifies the diagnostic modality of a result record.
type RecordKind string

const (
	KindLab        RecordKind = "lab"
	KindXray       RecordKind = "xray"
	KindUltrasound RecordKind = "ultrasound"
)

// Kinds lists every known record kind in display order.
func Kinds() []RecordKind {
	return []RecordKind{KindLab, KindXray, KindUltrasound}
}

// IsImaging reports whether the kind carries narrative text rather than panels.
func (k RecordKind) IsImaging() bool {
	return k == KindXray || k == KindUltrasound
}

// RecordStatus is the lifecycle state of a result record.
type RecordStatus string

const (
	StatusPending   RecordStatus = "pending"
	StatusCompleted RecordStatus = "completed"
)

// ResultRecord is one diagnostic order as produced by the records subsystem.
// Lab records carry Panels; imaging records carry Findings and Impression.
// CompletedAt is set only when Status is completed.
type ResultRecord struct {
	ID          uuid.UUID                    `json:"id"`
	PatientID   string                       `json:"patient_id"`
	Kind        RecordKind                   `json:"kind"`
	Status      RecordStatus                 `json:"status"`
	RequestedAt time.Time                    `json:"requested_at"`
	CompletedAt *time.Time                   `json:"completed_at,omitempty"`
	Panels      map[string]map[string]string `json:"panels,omitempty"`
	Findings    string                       `json:"findings,omitempty"`
	Impression  string                       `json:"impression,omitempty"`
}

// Completed reports whether the record has a usable completion timestamp.
// Rows with CompletedAt before RequestedAt are data-quality errors and are
// treated as not completed for aggregation purposes.
func (r ResultRecord) Completed() bool {
	if r.Status != StatusCompleted || r.CompletedAt == nil {
		return false
	}
	return !r.CompletedAt.Before(r.RequestedAt)
}

// ParsePanels deserializes a raw lab result blob into the panel/field/value
// shape the evaluator consumes. Clinic payloads are free-form: values may be
// strings, numbers or booleans, and whole blobs may be corrupted. Anything
// that cannot be interpreted yields nil rather than an error, which the
// evaluator treats as "no findings".
func ParsePanels(raw []byte) map[string]map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var blob map[string]map[string]any
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil
	}
	panels := make(map[string]map[string]string, len(blob))
	for panel, fields := range blob {
		if len(fields) == 0 {
			continue
		}
		out := make(map[string]string, len(fields))
		for field, v := range fields {
			switch val := v.(type) {
			case string:
				out[field] = val
			case float64:
				out[field] = trimFloat(val)
			case bool:
				if val {
					out[field] = "positive"
				} else {
					out[field] = "negative"
				}
			default:
				// nested objects/arrays carry no evaluable value
			}
		}
		if len(out) > 0 {
			panels[panel] = out
		}
	}
	if len(panels) == 0 {
		return nil
	}
	return panels
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	// drop trailing zeros so "5.5000" round-trips as "5.5"
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
