package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

const usersCollection = "users"

// UserStore is the account collection of one tenant.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type userStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) UserStore {
	return &userStore{c: db.Collection(usersCollection)}
}

// GetByEmail retrieves an active account by email.
func (s *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	filter := bson.D{{Key: "email", Value: email}, {Key: "active", Value: true}}

	var user entity.User
	err := s.c.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, findError(err)
	}
	return &user, nil
}

// GetByID retrieves an account by id.
func (s *userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.c.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, findError(err)
	}
	return &user, nil
}
