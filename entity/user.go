package entity

import "time"

// User is an account inside one tenant's database.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Role         string    `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	ClassName    string    `json:"class_name,omitempty" bson:"class_name,omitempty"`
	Section      string    `json:"section,omitempty" bson:"section,omitempty"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Identity builds the token identity for this user within a school.
func (u *User) Identity(schoolCode string) *Identity {
	return &Identity{
		UserID:     u.ID,
		Name:       u.Name,
		Role:       u.Role,
		SchoolCode: schoolCode,
	}
}
