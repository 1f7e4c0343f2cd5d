package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSLA = SLATable{KindLab: 7, KindXray: 3, KindUltrasound: 5}

func pendingRecord(kind RecordKind, requested time.Time) ResultRecord {
	return ResultRecord{Kind: kind, Status: StatusPending, RequestedAt: requested}
}

func TestAgingScenarioOverdueLab(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	rec := pendingRecord(KindLab, now.AddDate(0, 0, -10))

	info, ok := Age(rec, testSLA, now)
	require.True(t, ok)
	assert.Equal(t, 10, info.DaysOld)
	assert.True(t, info.IsOverdue)
}

func TestAgingSLABoundary(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	// Exactly SLA days old is still on time; one more day is overdue.
	onTime, ok := Age(pendingRecord(KindLab, now.AddDate(0, 0, -7)), testSLA, now)
	require.True(t, ok)
	assert.Equal(t, 7, onTime.DaysOld)
	assert.False(t, onTime.IsOverdue)

	overdue, ok := Age(pendingRecord(KindLab, now.AddDate(0, 0, -8)), testSLA, now)
	require.True(t, ok)
	assert.Equal(t, 8, overdue.DaysOld)
	assert.True(t, overdue.IsOverdue)
}

func TestAgingFloorsPartialDays(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	rec := pendingRecord(KindXray, now.Add(-(3*24 + 23) * time.Hour))

	info, ok := Age(rec, testSLA, now)
	require.True(t, ok)
	assert.Equal(t, 3, info.DaysOld)
	assert.False(t, info.IsOverdue)
}

func TestAgingFutureRequestClampsToZero(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	rec := pendingRecord(KindLab, now.Add(48*time.Hour))

	info, ok := Age(rec, testSLA, now)
	require.True(t, ok)
	assert.Equal(t, 0, info.DaysOld)
	assert.False(t, info.IsOverdue)
}

func TestAgingOnlyDefinedForPending(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	rec := ResultRecord{
		Kind:        KindLab,
		Status:      StatusCompleted,
		RequestedAt: now.AddDate(0, 0, -20),
		CompletedAt: &done,
	}
	_, ok := Age(rec, testSLA, now)
	assert.False(t, ok)
}

func TestAgingWithoutConfiguredSLA(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	rec := pendingRecord(KindUltrasound, now.AddDate(0, 0, -30))

	info, ok := Age(rec, SLATable{KindLab: 7}, now)
	require.True(t, ok)
	assert.Equal(t, 30, info.DaysOld)
	assert.False(t, info.IsOverdue, "kinds with no SLA are never overdue")
}
