package entity

import (
	"strings"
	"time"
)

// School is one tenant in the global directory. The code is the tenant
// key and never changes after registration.
type School struct {
	Code      string    `json:"code" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	SOSChatID int64     `json:"sos_chat_id,omitempty" bson:"sos_chat_id,omitempty"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewSchool creates a new School entity with a normalized code.
func NewSchool(code, name string) *School {
	return &School{
		Code:      NormalizeSchoolCode(code),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// IsActive checks if the school is active.
func (s *School) IsActive() bool {
	return s.Active
}

// NormalizeSchoolCode maps a school code to its canonical uppercase form.
func NormalizeSchoolCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
