package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

const leaveRequestsCollection = "leave_requests"

// LeaveStore is the leave-request collection of one tenant.
type LeaveStore interface {
	Create(ctx context.Context, req *entity.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]entity.LeaveRequest, error)
	ListAll(ctx context.Context, status string) ([]entity.LeaveRequest, error)
	Decide(ctx context.Context, id, status, reviewerID, reviewerName, comments string) (*entity.LeaveRequest, error)
	DeletePending(ctx context.Context, id, teacherID string) (int64, error)
	Stats(ctx context.Context) (*entity.LeaveStats, error)
}

type leaveStore struct {
	c *mongo.Collection
}

func NewLeaveStore(db *mongo.Database) LeaveStore {
	return &leaveStore{c: db.Collection(leaveRequestsCollection)}
}

// Create inserts a new leave request.
func (s *leaveStore) Create(ctx context.Context, req *entity.LeaveRequest) error {
	_, err := s.c.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// GetByID retrieves one leave request.
func (s *leaveStore) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	var req entity.LeaveRequest
	err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&req)
	if err != nil {
		return nil, findError(err)
	}
	return &req, nil
}

// ListByTeacher returns a teacher's own requests, newest first.
func (s *leaveStore) ListByTeacher(ctx context.Context, teacherID string) ([]entity.LeaveRequest, error) {
	filter := bson.D{{Key: "teacher_id", Value: teacherID}}
	return s.list(ctx, filter)
}

// ListAll returns the school's requests, optionally filtered by status,
// newest first.
func (s *leaveStore) ListAll(ctx context.Context, status string) ([]entity.LeaveRequest, error) {
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}
	return s.list(ctx, filter)
}

func (s *leaveStore) list(ctx context.Context, filter bson.D) ([]entity.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var requests []entity.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, findError(err)
	}
	return requests, nil
}

// Decide flips a pending request to approved or rejected and stamps the
// reviewer in the same update. A request that is no longer pending fails
// with ErrConflict, an unknown id with ErrNotFound.
func (s *leaveStore) Decide(ctx context.Context, id, status, reviewerID, reviewerName, comments string) (*entity.LeaveRequest, error) {
	now := time.Now().UTC()
	filter := bson.D{{Key: "_id", Value: id}, {Key: "status", Value: entity.LeaveStatusPending}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "reviewer_id", Value: reviewerID},
		{Key: "reviewer_name", Value: reviewerName},
		{Key: "reviewed_at", Value: now},
		{Key: "admin_comments", Value: comments},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req entity.LeaveRequest
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongodb update error: %w", err)
	}

	// No pending match: either the record is gone or already decided.
	if _, getErr := s.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrConflict
}

// DeletePending removes a request only while it is still pending and
// owned by the given teacher. Returns the number of removed documents so
// the caller can tell a lost race from success.
func (s *leaveStore) DeletePending(ctx context.Context, id, teacherID string) (int64, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "teacher_id", Value: teacherID},
		{Key: "status", Value: entity.LeaveStatusPending},
	}
	result, err := s.c.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb delete error: %w", err)
	}
	return result.DeletedCount, nil
}

// Stats aggregates per-status counts in one pass. The total is the sum
// of the buckets by construction.
func (s *leaveStore) Stats(ctx context.Context) (*entity.LeaveStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongodb aggregate error: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("mongodb aggregate error: %w", err)
	}

	stats := &entity.LeaveStats{}
	for _, b := range buckets {
		switch b.Status {
		case entity.LeaveStatusPending:
			stats.Pending = b.Count
		case entity.LeaveStatusApproved:
			stats.Approved = b.Count
		case entity.LeaveStatusRejected:
			stats.Rejected = b.Count
		}
		stats.Total += b.Count
	}
	return stats, nil
}
