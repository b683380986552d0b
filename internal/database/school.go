package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

const schoolsCollection = "schools"

// GetSchoolByCode retrieves a school from the global directory by its
// tenant code. The code is normalized before the lookup.
func (m *MongoDB) GetSchoolByCode(ctx context.Context, code string) (*entity.School, error) {
	collection := m.directoryDB().Collection(schoolsCollection)

	filter := bson.D{{Key: "_id", Value: entity.NormalizeSchoolCode(code)}}

	var school entity.School
	err := collection.FindOne(ctx, filter).Decode(&school)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSchoolNotFound
		}
		return nil, findError(err)
	}

	return &school, nil
}

// RegisterSchool inserts a school into the directory. Codes are unique;
// re-registering an existing code fails.
func (m *MongoDB) RegisterSchool(ctx context.Context, school *entity.School) error {
	collection := m.directoryDB().Collection(schoolsCollection)

	_, err := collection.InsertOne(ctx, school)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("school code %s already registered: %w", school.Code, ErrConflict)
		}
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// GetSchools retrieves schools filtered by status: active, inactive or all.
func (m *MongoDB) GetSchools(ctx context.Context, status string) ([]entity.School, error) {
	collection := m.directoryDB().Collection(schoolsCollection)

	filter := bson.D{}
	switch status {
	case "active":
		filter = bson.D{{Key: "active", Value: true}}
	case "inactive":
		filter = bson.D{{Key: "active", Value: false}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, findError(err)
	}
	defer cursor.Close(ctx)

	var schools []entity.School
	if err = cursor.All(ctx, &schools); err != nil {
		return nil, findError(err)
	}

	return schools, nil
}

// SetSchoolActive flips the active flag of a school by code.
func (m *MongoDB) SetSchoolActive(ctx context.Context, code string, active bool) error {
	collection := m.directoryDB().Collection(schoolsCollection)

	filter := bson.D{{Key: "_id", Value: entity.NormalizeSchoolCode(code)}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "active", Value: active}}}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSchoolNotFound
	}
	return nil
}

// UpdateSchoolSettings changes the mutable settings fields of a school.
// The code and creation time never change.
func (m *MongoDB) UpdateSchoolSettings(ctx context.Context, code string, name, address, phone string, sosChatID int64) error {
	collection := m.directoryDB().Collection(schoolsCollection)

	set := bson.D{}
	if name != "" {
		set = append(set, bson.E{Key: "name", Value: name})
	}
	if address != "" {
		set = append(set, bson.E{Key: "address", Value: address})
	}
	if phone != "" {
		set = append(set, bson.E{Key: "phone", Value: phone})
	}
	if sosChatID != 0 {
		set = append(set, bson.E{Key: "sos_chat_id", Value: sosChatID})
	}
	if len(set) == 0 {
		return nil
	}

	filter := bson.D{{Key: "_id", Value: entity.NormalizeSchoolCode(code)}}
	result, err := collection.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSchoolNotFound
	}
	return nil
}

// CountActiveSchools returns the count of active schools.
func (m *MongoDB) CountActiveSchools(ctx context.Context) (int64, error) {
	collection := m.directoryDB().Collection(schoolsCollection)

	count, err := collection.CountDocuments(ctx, bson.D{{Key: "active", Value: true}})
	if err != nil {
		return 0, fmt.Errorf("mongodb count error: %w", err)
	}

	return count, nil
}
