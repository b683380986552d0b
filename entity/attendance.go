package entity

import "time"

// AttendanceSession is the sub-daily slot a mark belongs to.
type AttendanceSession string

const (
	SessionMorning   AttendanceSession = "morning"
	SessionAfternoon AttendanceSession = "afternoon"
)

// Valid returns true when the session is a supported value.
func (s AttendanceSession) Valid() bool {
	return s == SessionMorning || s == SessionAfternoon
}

// AttendanceStatus is the per-student mark for one session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceLeave   AttendanceStatus = "leave"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeave:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one mark: a student, a day, a session. Re-marking
// the same slot replaces the previous mark.
type AttendanceRecord struct {
	ID          string            `json:"id" bson:"_id"`
	StudentID   string            `json:"student_id" bson:"student_id"`
	StudentName string            `json:"student_name" bson:"student_name"`
	ClassName   string            `json:"class_name" bson:"class_name"`
	Section     string            `json:"section" bson:"section"`
	Date        time.Time         `json:"date" bson:"date"`
	Session     AttendanceSession `json:"session" bson:"session"`
	Status      AttendanceStatus  `json:"status" bson:"status"`
	MarkedBy    string            `json:"marked_by" bson:"marked_by"`
	MarkedAt    time.Time         `json:"marked_at" bson:"marked_at"`
}

// SlotID builds the deterministic document id for one (student, date,
// session) slot so bulk upserts overwrite instead of duplicating.
func SlotID(studentID string, date time.Time, session AttendanceSession) string {
	return studentID + ":" + date.UTC().Format("2006-01-02") + ":" + string(session)
}

// AttendanceSummary aggregates one student's marks over a date range.
type AttendanceSummary struct {
	StudentID      string  `json:"student_id"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Leave          int     `json:"leave"`
	Total          int     `json:"total"`
	PresentPercent float64 `json:"present_percent"`
}

// Tally adds one mark to the summary counters.
func (s *AttendanceSummary) Tally(status AttendanceStatus) {
	switch status {
	case AttendancePresent:
		s.Present++
	case AttendanceAbsent:
		s.Absent++
	case AttendanceLate:
		s.Late++
	case AttendanceLeave:
		s.Leave++
	default:
		return
	}
	s.Total++
}

// Finalize computes the percentage once all marks are tallied. Late
// counts as attended.
func (s *AttendanceSummary) Finalize() {
	if s.Total == 0 {
		s.PresentPercent = 0
		return
	}
	s.PresentPercent = float64(s.Present+s.Late) / float64(s.Total) * 100
}
