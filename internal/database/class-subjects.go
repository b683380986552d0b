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

const classSubjectsCollection = "class_subjects"

// SubjectStore is the class-subjects collection of one tenant. One
// document per class+section.
type SubjectStore interface {
	Upsert(ctx context.Context, cs *entity.ClassSubjects) error
	Get(ctx context.Context, className, section string) (*entity.ClassSubjects, error)
	ListAll(ctx context.Context) ([]entity.ClassSubjects, error)
}

type subjectStore struct {
	c *mongo.Collection
}

func NewSubjectStore(db *mongo.Database) SubjectStore {
	return &subjectStore{c: db.Collection(classSubjectsCollection)}
}

// Upsert replaces the subject list for a class+section.
func (s *subjectStore) Upsert(ctx context.Context, cs *entity.ClassSubjects) error {
	cs.ID = entity.ClassSectionID(cs.ClassName, cs.Section)
	cs.UpdatedAt = time.Now().UTC()

	filter := bson.D{{Key: "_id", Value: cs.ID}}
	opts := options.Replace().SetUpsert(true)

	_, err := s.c.ReplaceOne(ctx, filter, cs, opts)
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// Get retrieves the subject list for a class+section.
func (s *subjectStore) Get(ctx context.Context, className, section string) (*entity.ClassSubjects, error) {
	filter := bson.D{{Key: "_id", Value: entity.ClassSectionID(className, section)}}

	var cs entity.ClassSubjects
	err := s.c.FindOne(ctx, filter).Decode(&cs)
	if err != nil {
		return nil, findError(err)
	}
	return &cs, nil
}

// ListAll returns every class's subject list, ordered by class+section.
func (s *subjectStore) ListAll(ctx context.Context) ([]entity.ClassSubjects, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var lists []entity.ClassSubjects
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, findError(err)
	}
	return lists, nil
}
