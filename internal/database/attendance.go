package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

const attendanceCollection = "attendance"

// AttendanceStore is the session-attendance collection of one tenant.
// Document ids are deterministic per (student, date, session) so marking
// is an upsert.
type AttendanceStore interface {
	BulkMark(ctx context.Context, records []entity.AttendanceRecord) error
	ListByClassDate(ctx context.Context, className, section string, date time.Time) ([]entity.AttendanceRecord, error)
	ListByStudentRange(ctx context.Context, studentID string, from, to time.Time) ([]entity.AttendanceRecord, error)
}

type attendanceStore struct {
	c *mongo.Collection
}

func NewAttendanceStore(db *mongo.Database) AttendanceStore {
	return &attendanceStore{c: db.Collection(attendanceCollection)}
}

// BulkMark upserts a batch of marks in one unordered bulk write.
func (s *attendanceStore) BulkMark(ctx context.Context, records []entity.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: rec.ID}}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	_, err := s.c.BulkWrite(ctx, models, opts)
	if err != nil {
		return fmt.Errorf("mongodb bulk write error: %w", err)
	}
	return nil
}

// ListByClassDate returns every mark of a class+section for one day,
// both sessions, ordered by student then session.
func (s *attendanceStore) ListByClassDate(ctx context.Context, className, section string, date time.Time) ([]entity.AttendanceRecord, error) {
	filter := bson.D{
		{Key: "class_name", Value: className},
		{Key: "section", Value: section},
		{Key: "date", Value: dayStart(date)},
	}
	opts := options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}, {Key: "session", Value: 1}})
	return s.list(ctx, filter, opts)
}

// ListByStudentRange returns one student's marks over an inclusive date
// range, oldest first.
func (s *attendanceStore) ListByStudentRange(ctx context.Context, studentID string, from, to time.Time) ([]entity.AttendanceRecord, error) {
	filter := bson.D{
		{Key: "student_id", Value: studentID},
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: dayStart(from)},
			{Key: "$lte", Value: dayStart(to)},
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "session", Value: 1}})
	return s.list(ctx, filter, opts)
}

func (s *attendanceStore) list(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]entity.AttendanceRecord, error) {
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var records []entity.AttendanceRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, findError(err)
	}
	return records, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
