package entity

import "time"

// SOS alert lifecycle states.
const (
	SOSStatusActive       = "active"
	SOSStatusAcknowledged = "acknowledged"
	SOSStatusResolved     = "resolved"
)

// SOSAlert is an emergency ping raised by a student. Alerts are never
// deleted; staff move them through acknowledged and resolved.
type SOSAlert struct {
	ID             string     `json:"id" bson:"_id"`
	StudentID      string     `json:"student_id" bson:"student_id"`
	StudentName    string     `json:"student_name" bson:"student_name"`
	ClassName      string     `json:"class_name,omitempty" bson:"class_name,omitempty"`
	Section        string     `json:"section,omitempty" bson:"section,omitempty"`
	SchoolCode     string     `json:"school_code" bson:"school_code"`
	Location       string     `json:"location" bson:"location"`
	Message        string     `json:"message,omitempty" bson:"message,omitempty"`
	Status         string     `json:"status" bson:"status"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty" bson:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" bson:"acknowledged_at,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
}

// ValidSOSStatus reports whether s is a known lifecycle state.
func ValidSOSStatus(s string) bool {
	switch s {
	case SOSStatusActive, SOSStatusAcknowledged, SOSStatusResolved:
		return true
	default:
		return false
	}
}

// CanAcknowledge checks the alert is still waiting for a first response.
func (a *SOSAlert) CanAcknowledge() bool {
	return a.Status == SOSStatusActive
}

// CanResolve checks the alert has not been closed yet.
func (a *SOSAlert) CanResolve() bool {
	return a.Status == SOSStatusActive || a.Status == SOSStatusAcknowledged
}
