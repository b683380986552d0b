package entity

import "time"

// Leave request lifecycle states.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest is a teacher-submitted leave application. NumberOfDays is
// derived from the date range and recomputed before every write.
type LeaveRequest struct {
	ID            string     `json:"id" bson:"_id"`
	TeacherID     string     `json:"teacher_id" bson:"teacher_id"`
	TeacherName   string     `json:"teacher_name" bson:"teacher_name"`
	SchoolCode    string     `json:"school_code" bson:"school_code"`
	SubjectLine   string     `json:"subject_line" bson:"subject_line"`
	StartDate     time.Time  `json:"start_date" bson:"start_date"`
	EndDate       time.Time  `json:"end_date" bson:"end_date"`
	NumberOfDays  int        `json:"number_of_days" bson:"number_of_days"`
	Description   string     `json:"description" bson:"description"`
	Status        string     `json:"status" bson:"status"`
	ReviewerID    string     `json:"reviewer_id,omitempty" bson:"reviewer_id,omitempty"`
	ReviewerName  string     `json:"reviewer_name,omitempty" bson:"reviewer_name,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	AdminComments string     `json:"admin_comments,omitempty" bson:"admin_comments,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// ValidLeaveStatus reports whether s is a known lifecycle state.
func ValidLeaveStatus(s string) bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	default:
		return false
	}
}

// ValidLeaveDecision reports whether s is a state an admin may set.
func ValidLeaveDecision(s string) bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// IsPending checks if the request still awaits a decision.
func (l *LeaveRequest) IsPending() bool {
	return l.Status == LeaveStatusPending
}

// OwnedBy checks if teacherID submitted this request.
func (l *LeaveRequest) OwnedBy(teacherID string) bool {
	return l.TeacherID == teacherID
}

// LeaveDayCount returns the inclusive number of calendar days between
// start and end. A same-day range counts as one day.
func LeaveDayCount(start, end time.Time) int {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// TruncateToDay drops the time-of-day, keeping midnight UTC. Stored
// leave and attendance dates all pass through here.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LeaveStats aggregates per-status counts for one school.
type LeaveStats struct {
	Total    int64 `json:"total" bson:"total"`
	Pending  int64 `json:"pending" bson:"pending"`
	Approved int64 `json:"approved" bson:"approved"`
	Rejected int64 `json:"rejected" bson:"rejected"`
}
