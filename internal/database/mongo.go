package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/JayeshSardesai/ERP-sub004/internal/config"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

// Sentinel errors shared by every store; handlers map them to HTTP statuses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrSchoolNotFound = errors.New("school not found")
	ErrForbidden      = errors.New("not allowed")
	ErrConflict       = errors.New("record is not in a state that allows this operation")
)

// MongoDB wraps one cluster client. The directory database holds the
// global school registry; tenant databases hang off the same client.
type MongoDB struct {
	client    *mongo.Client
	directory string
	prefix    string
	log       *slog.Logger
}

// NewMongoClient connects to the cluster and verifies it is reachable.
func NewMongoClient(ctx context.Context, conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Directory,
		})
	}

	connection, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = connection.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb ping error: %w", err)
	}

	return &MongoDB{
		client:    connection,
		directory: conf.Mongo.Directory,
		prefix:    conf.Mongo.TenantPrefix,
		log:       logger.With(sl.Module("mongodb")),
	}, nil
}

// Ping verifies the cluster is still reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) directoryDB() *mongo.Database {
	return m.client.Database(m.directory)
}

// tenantDatabaseName maps a normalized school code to its database name.
func (m *MongoDB) tenantDatabaseName(code string) string {
	return m.prefix + strings.ToLower(code)
}

func findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("mongodb find error: %w", err)
}
