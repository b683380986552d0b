package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveDayCount(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1, LeaveDayCount(day(5), day(5)), "same-day range counts as one day")
	assert.Equal(t, 3, LeaveDayCount(day(1), day(3)))
	assert.Equal(t, 0, LeaveDayCount(day(3), day(1)), "reversed range yields zero")

	// Time-of-day must not change the count.
	morning := time.Date(2025, time.January, 1, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2025, time.January, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2, LeaveDayCount(morning, evening))
}

func TestValidLeaveDecision(t *testing.T) {
	assert.True(t, ValidLeaveDecision(LeaveStatusApproved))
	assert.True(t, ValidLeaveDecision(LeaveStatusRejected))
	assert.False(t, ValidLeaveDecision(LeaveStatusPending))
	assert.False(t, ValidLeaveDecision("cancelled"))
}

func TestLeaveRequestPredicates(t *testing.T) {
	req := &LeaveRequest{TeacherID: "t-1", Status: LeaveStatusPending}

	assert.True(t, req.IsPending())
	assert.True(t, req.OwnedBy("t-1"))
	assert.False(t, req.OwnedBy("t-2"))

	req.Status = LeaveStatusApproved
	assert.False(t, req.IsPending())
}
