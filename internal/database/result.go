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

const (
	resultsCollection       = "results"
	legacyResultsCollection = "results_legacy"
)

// ResultStore holds one tenant's nested result documents plus the legacy
// flat collection the migration sweep drains.
type ResultStore interface {
	UpsertScore(ctx context.Context, key entity.ResultKey, studentName string, score entity.SubjectScore) error
	GetByStudentYear(ctx context.Context, studentID, academicYear string) (*entity.Result, error)
	ListByClassYear(ctx context.Context, className, section, academicYear string) ([]entity.Result, error)
	FetchLegacy(ctx context.Context) ([]entity.LegacyResult, error)
	InsertMigrated(ctx context.Context, result *entity.Result) (bool, error)
	DeleteLegacyByIDs(ctx context.Context, ids []string) (int64, error)
}

type resultStore struct {
	c      *mongo.Collection
	legacy *mongo.Collection
}

func NewResultStore(db *mongo.Database) ResultStore {
	return &resultStore{
		c:      db.Collection(resultsCollection),
		legacy: db.Collection(legacyResultsCollection),
	}
}

// UpsertScore pushes a subject entry into the student's year document,
// creating the document on first write.
func (s *resultStore) UpsertScore(ctx context.Context, key entity.ResultKey, studentName string, score entity.SubjectScore) error {
	filter := bson.D{{Key: "_id", Value: key.DocID()}}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "subjects", Value: score}}},
		{Key: "$set", Value: bson.D{
			{Key: "student_name", Value: studentName},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "student_id", Value: key.StudentID},
			{Key: "class_name", Value: key.ClassName},
			{Key: "section", Value: key.Section},
			{Key: "academic_year", Value: key.AcademicYear},
		}},
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// GetByStudentYear retrieves one student's nested document for a year.
func (s *resultStore) GetByStudentYear(ctx context.Context, studentID, academicYear string) (*entity.Result, error) {
	filter := bson.D{{Key: "student_id", Value: studentID}, {Key: "academic_year", Value: academicYear}}

	var result entity.Result
	err := s.c.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		return nil, findError(err)
	}
	return &result, nil
}

// ListByClassYear returns every nested document of a class+section for
// one academic year.
func (s *resultStore) ListByClassYear(ctx context.Context, className, section, academicYear string) ([]entity.Result, error) {
	filter := bson.D{
		{Key: "class_name", Value: className},
		{Key: "section", Value: section},
		{Key: "academic_year", Value: academicYear},
	}
	opts := options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}})

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var results []entity.Result
	if err = cursor.All(ctx, &results); err != nil {
		return nil, findError(err)
	}
	return results, nil
}

// FetchLegacy returns every remaining flat row, oldest first.
func (s *resultStore) FetchLegacy(ctx context.Context) ([]entity.LegacyResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := s.legacy.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var rows []entity.LegacyResult
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, findError(err)
	}
	return rows, nil
}

// InsertMigrated writes one migrated nested document. The write only
// lands when no document exists for the key yet, so re-running the sweep
// after a crash cannot duplicate. Reports whether a document was created.
func (s *resultStore) InsertMigrated(ctx context.Context, result *entity.Result) (bool, error) {
	filter := bson.D{{Key: "_id", Value: result.ID}}
	update := bson.D{{Key: "$setOnInsert", Value: result}}
	opts := options.Update().SetUpsert(true)

	res, err := s.c.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("mongodb upsert error: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// DeleteLegacyByIDs removes consumed flat rows. Returns the number
// actually deleted.
func (s *resultStore) DeleteLegacyByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}

	result, err := s.legacy.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb delete error: %w", err)
	}
	return result.DeletedCount, nil
}
