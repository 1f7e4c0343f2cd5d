package triage

import "time"

// SLATable maps record kind to the clinic's maximum acceptable pending days.
// The values are operational configuration; the engine ships no defaults.
type SLATable map[RecordKind]int

// AgingInfo describes how long a pending order has been waiting.
type AgingInfo struct {
	DaysOld   int  `json:"days_old"`
	IsOverdue bool `json:"is_overdue"`
}

// Age computes aging for a pending record at the given wall-clock time.
// The second return is false for records that are not pending.
//
// DaysOld is the floor of the elapsed duration in whole days and never
// negative: a requestedAt in the future (clock skew, data entry error)
// clamps to zero and is never overdue. A record is overdue only when it has
// waited strictly longer than the SLA, so daysOld == SLA is still on time.
// Kinds absent from the table have no SLA and are never overdue.
func Age(rec ResultRecord, sla SLATable, now time.Time) (AgingInfo, bool) {
	if rec.Status != StatusPending {
		return AgingInfo{}, false
	}
	elapsed := now.Sub(rec.RequestedAt)
	if elapsed < 0 {
		return AgingInfo{DaysOld: 0, IsOverdue: false}, true
	}
	days := int(elapsed / (24 * time.Hour))
	info := AgingInfo{DaysOld: days}
	if limit, ok := sla[rec.Kind]; ok {
		info.IsOverdue = days > limit
	}
	return info, true
}
