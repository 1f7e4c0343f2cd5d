package triage

import (
	"math"
)

// TATStat is the turnaround-time aggregate for one record kind.
type TATStat struct {
	Samples  int     `json:"samples"`
	MeanDays float64 `json:"mean_days"` // rounded to one decimal for display
}

// TATSummary holds per-kind turnaround means over a batch of records.
// Kinds with no valid samples are absent; consumers render those as
// "no data" rather than a measured zero-day turnaround.
type TATSummary struct {
	Kinds map[RecordKind]TATStat `json:"kinds"`
}

// Mean returns the rounded mean for a kind and whether any samples existed.
func (s TATSummary) Mean(kind RecordKind) (float64, bool) {
	stat, ok := s.Kinds[kind]
	if !ok || stat.Samples == 0 {
		return 0, false
	}
	return stat.MeanDays, true
}

// Turnaround computes per-kind mean turnaround over a batch. Only records
// with a usable completion timestamp contribute; pending records, missing
// dates and completions before the request time are data-quality conditions
// and are silently excluded.
func Turnaround(records []ResultRecord) TATSummary {
	sums := make(map[RecordKind]float64)
	counts := make(map[RecordKind]int)
	for _, rec := range records {
		if !rec.Completed() {
			continue
		}
		days := rec.CompletedAt.Sub(rec.RequestedAt).Hours() / 24
		sums[rec.Kind] += days
		counts[rec.Kind]++
	}

	summary := TATSummary{Kinds: make(map[RecordKind]TATStat, len(counts))}
	for kind, n := range counts {
		mean := sums[kind] / float64(n)
		summary.Kinds[kind] = TATStat{
			Samples:  n,
			MeanDays: math.Round(mean*10) / 10,
		}
	}
	return summary
}
