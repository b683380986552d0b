package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotID(t *testing.T) {
	date := time.Date(2025, time.March, 7, 10, 15, 0, 0, time.UTC)

	id := SlotID("s-1", date, SessionMorning)
	assert.Equal(t, "s-1:2025-03-07:morning", id)

	// Same slot, different wall clock, same id.
	later := time.Date(2025, time.March, 7, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, id, SlotID("s-1", later, SessionMorning))

	assert.NotEqual(t, id, SlotID("s-1", date, SessionAfternoon))
}

func TestAttendanceSummaryFinalize(t *testing.T) {
	s := &AttendanceSummary{StudentID: "s-1"}
	for _, st := range []AttendanceStatus{
		AttendancePresent, AttendancePresent, AttendanceLate, AttendanceAbsent,
	} {
		s.Tally(st)
	}
	s.Finalize()

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Present)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, 1, s.Absent)
	// Late counts as attended.
	assert.InDelta(t, 75.0, s.PresentPercent, 0.001)
}

func TestAttendanceSummaryEmpty(t *testing.T) {
	s := &AttendanceSummary{StudentID: "s-1"}
	s.Finalize()
	assert.Zero(t, s.PresentPercent)
}
