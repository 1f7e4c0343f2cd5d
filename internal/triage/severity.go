// Package triage classifies diagnostic result records for clinical review.
// It evaluates lab panels against a rule catalog, flags narrative imaging
// reports, tracks pending-order aging against per-department SLAs, and
// aggregates turnaround-time statistics. Everything here is a pure function
// of the record snapshot: no I/O, no shared mutable state.
package triage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the ordered clinical urgency of a finding.
// Higher values always dominate when findings are aggregated.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityAbnormal
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityAbnormal:
		return "abnormal"
	default:
		return "none"
	}
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the lowercase names used in catalog files.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "normal", "":
		*s = SeverityNone
	case "abnormal":
		*s = SeverityAbnormal
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("triage: unknown severity %q", name)
	}
	return nil
}

// maxSeverity returns the higher of two severities.
func maxSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}
