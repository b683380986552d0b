package entity

// Roles recognized by the API.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	SchoolCode string `json:"school_code"`
}

// IsAdmin checks if the caller holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsTeacher checks if the caller holds the teacher role.
func (i *Identity) IsTeacher() bool {
	return i.Role == RoleTeacher
}

// IsStudent checks if the caller holds the student role.
func (i *Identity) IsStudent() bool {
	return i.Role == RoleStudent
}
