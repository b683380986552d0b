package entity

import "time"

// SubjectScore is one test entry inside a student's year document.
type SubjectScore struct {
	SubjectName string  `json:"subject_name" bson:"subject_name"`
	TestType    string  `json:"test_type" bson:"test_type"`
	Marks       float64 `json:"marks" bson:"marks"`
	MaxMarks    float64 `json:"max_marks" bson:"max_marks"`
	Grade       string  `json:"grade" bson:"grade"`
	Percentage  float64 `json:"percentage" bson:"percentage"`
}

// Result is the nested form: one document per student per academic year
// holding every subject-score entry.
type Result struct {
	ID           string         `json:"id" bson:"_id"`
	StudentID    string         `json:"student_id" bson:"student_id"`
	StudentName  string         `json:"student_name,omitempty" bson:"student_name,omitempty"`
	ClassName    string         `json:"class_name" bson:"class_name"`
	Section      string         `json:"section" bson:"section"`
	AcademicYear string         `json:"academic_year" bson:"academic_year"`
	Subjects     []SubjectScore `json:"subjects" bson:"subjects"`
	MigratedFrom []string       `json:"migrated_from,omitempty" bson:"migrated_from,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// ResultKey identifies one nested document.
type ResultKey struct {
	StudentID    string
	ClassName    string
	Section      string
	AcademicYear string
}

// DocID builds the deterministic nested-document id for the key.
func (k ResultKey) DocID() string {
	return k.StudentID + ":" + k.ClassName + ":" + k.Section + ":" + k.AcademicYear
}

// LegacyResult is the old flat layout: one row per subject per test.
// Kept only as migration input.
type LegacyResult struct {
	ID           string    `json:"id" bson:"_id"`
	StudentID    string    `json:"student_id" bson:"student_id"`
	StudentName  string    `json:"student_name,omitempty" bson:"student_name,omitempty"`
	ClassName    string    `json:"class_name" bson:"class_name"`
	Section      string    `json:"section" bson:"section"`
	AcademicYear string    `json:"academic_year" bson:"academic_year"`
	SubjectName  string    `json:"subject_name" bson:"subject_name"`
	TestType     string    `json:"test_type" bson:"test_type"`
	Marks        float64   `json:"marks" bson:"marks"`
	MaxMarks     float64   `json:"max_marks" bson:"max_marks"`
	Grade        string    `json:"grade" bson:"grade"`
	Percentage   float64   `json:"percentage" bson:"percentage"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Key returns the grouping key this flat row folds into.
func (r *LegacyResult) Key() ResultKey {
	return ResultKey{
		StudentID:    r.StudentID,
		ClassName:    r.ClassName,
		Section:      r.Section,
		AcademicYear: r.AcademicYear,
	}
}

// Score converts the flat row into a nested subject entry.
func (r *LegacyResult) Score() SubjectScore {
	return SubjectScore{
		SubjectName: r.SubjectName,
		TestType:    r.TestType,
		Marks:       r.Marks,
		MaxMarks:    r.MaxMarks,
		Grade:       r.Grade,
		Percentage:  r.Percentage,
	}
}

// MigrationReport summarises one legacy-results sweep.
type MigrationReport struct {
	GroupsMigrated int `json:"groups_migrated"`
	RowsConsumed   int `json:"rows_consumed"`
	GroupsSkipped  int `json:"groups_skipped"`
}
