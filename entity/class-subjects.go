package entity

import "time"

// SubjectAssignment pairs a subject with the teacher who takes it.
type SubjectAssignment struct {
	SubjectName string `json:"subject_name" bson:"subject_name"`
	TeacherID   string `json:"teacher_id" bson:"teacher_id"`
	TeacherName string `json:"teacher_name,omitempty" bson:"teacher_name,omitempty"`
}

// ClassSubjects is the subject list for one class+section.
type ClassSubjects struct {
	ID        string              `json:"id" bson:"_id"`
	ClassName string              `json:"class_name" bson:"class_name"`
	Section   string              `json:"section" bson:"section"`
	Subjects  []SubjectAssignment `json:"subjects" bson:"subjects"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// ClassSectionID builds the deterministic document id for a class+section.
func ClassSectionID(className, section string) string {
	return className + ":" + section
}
