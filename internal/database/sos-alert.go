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

const sosAlertsCollection = "sos_alerts"

// SOSStore is the SOS alert collection of one tenant. Alerts are never
// deleted.
type SOSStore interface {
	Create(ctx context.Context, alert *entity.SOSAlert) error
	GetByID(ctx context.Context, id string) (*entity.SOSAlert, error)
	List(ctx context.Context, status string) ([]entity.SOSAlert, error)
	Acknowledge(ctx context.Context, id, actor string) (*entity.SOSAlert, error)
	Resolve(ctx context.Context, id, actor string) (*entity.SOSAlert, error)
}

type sosStore struct {
	c *mongo.Collection
}

func NewSOSStore(db *mongo.Database) SOSStore {
	return &sosStore{c: db.Collection(sosAlertsCollection)}
}

// Create inserts a new alert.
func (s *sosStore) Create(ctx context.Context, alert *entity.SOSAlert) error {
	_, err := s.c.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// GetByID retrieves one alert.
func (s *sosStore) GetByID(ctx context.Context, id string) (*entity.SOSAlert, error) {
	var alert entity.SOSAlert
	err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&alert)
	if err != nil {
		return nil, findError(err)
	}
	return &alert, nil
}

// List returns the school's alerts, optionally filtered by status,
// newest first.
func (s *sosStore) List(ctx context.Context, status string) ([]entity.SOSAlert, error) {
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var alerts []entity.SOSAlert
	if err = cursor.All(ctx, &alerts); err != nil {
		return nil, findError(err)
	}
	return alerts, nil
}

// Acknowledge moves an active alert to acknowledged, stamping the actor.
// Alerts past that state fail with ErrConflict.
func (s *sosStore) Acknowledge(ctx context.Context, id, actor string) (*entity.SOSAlert, error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "status", Value: entity.SOSStatusActive}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: entity.SOSStatusAcknowledged},
		{Key: "acknowledged_by", Value: actor},
		{Key: "acknowledged_at", Value: time.Now().UTC()},
	}}}
	return s.transition(ctx, id, filter, update)
}

// Resolve closes an alert from either open state, stamping the actor.
func (s *sosStore) Resolve(ctx context.Context, id, actor string) (*entity.SOSAlert, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{entity.SOSStatusActive, entity.SOSStatusAcknowledged}}}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: entity.SOSStatusResolved},
		{Key: "resolved_by", Value: actor},
		{Key: "resolved_at", Value: time.Now().UTC()},
	}}}
	return s.transition(ctx, id, filter, update)
}

func (s *sosStore) transition(ctx context.Context, id string, filter, update bson.D) (*entity.SOSAlert, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var alert entity.SOSAlert
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&alert)
	if err == nil {
		return &alert, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mongodb update error: %w", err)
	}

	if _, getErr := s.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrConflict
}
