package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

// fakeDirectory stands in for the cluster. Connect in the v1 driver is
// lazy, so handing out databases performs no I/O.
type fakeDirectory struct {
	client  *mongo.Client
	schools map[string]*entity.School
	openErr error
	pingErr error

	mu      sync.Mutex
	lookups int
	pings   int
}

func newFakeDirectory(t *testing.T, schools ...*entity.School) *fakeDirectory {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	require.NoError(t, err)

	d := &fakeDirectory{client: client, schools: make(map[string]*entity.School)}
	for _, s := range schools {
		d.schools[s.Code] = s
	}
	return d
}

func (d *fakeDirectory) GetSchoolByCode(_ context.Context, code string) (*entity.School, error) {
	d.mu.Lock()
	d.lookups++
	d.mu.Unlock()
	if d.openErr != nil {
		return nil, d.openErr
	}
	school, ok := d.schools[entity.NormalizeSchoolCode(code)]
	if !ok {
		return nil, ErrSchoolNotFound
	}
	return school, nil
}

func (d *fakeDirectory) TenantDatabase(code string) *mongo.Database {
	return d.client.Database("school_" + code)
}

func (d *fakeDirectory) Ping(_ context.Context) error {
	d.mu.Lock()
	d.pings++
	d.mu.Unlock()
	return d.pingErr
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryResolveSharesHandleAcrossCase(t *testing.T) {
	dir := newFakeDirectory(t, entity.NewSchool("ABC", "Test School"))
	reg := NewRegistry(dir, 0, discard())

	a, err := reg.Resolve(context.Background(), "abc")
	require.NoError(t, err)
	b, err := reg.Resolve(context.Background(), " ABC ")
	require.NoError(t, err)

	assert.Same(t, a, b, "case variants must share one handle")
	assert.Equal(t, "ABC", a.Code)
	assert.Equal(t, 1, dir.lookups, "directory hit only on first resolve")
	assert.NotNil(t, a.Leaves)
	assert.NotNil(t, a.Results)
}

func TestRegistryResolveConcurrentCreateOnce(t *testing.T) {
	dir := newFakeDirectory(t, entity.NewSchool("ABC", "Test School"))
	reg := NewRegistry(dir, 0, discard())

	const workers = 32
	tenants := make([]*Tenant, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			tenant, err := reg.Resolve(context.Background(), "abc")
			assert.NoError(t, err)
			tenants[i] = tenant
		}(i)
	}
	close(start)
	wg.Wait()

	require.NotNil(t, tenants[0])
	for i := 1; i < workers; i++ {
		assert.Same(t, tenants[0], tenants[i], "all resolvers must share one handle")
	}
	assert.Equal(t, 1, dir.lookups, "racing resolvers must open the tenant once")
}

func TestRegistryResolveUnknownSchool(t *testing.T) {
	dir := newFakeDirectory(t)
	reg := NewRegistry(dir, 0, discard())

	_, err := reg.Resolve(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrSchoolNotFound)

	_, err = reg.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestRegistryResolveInactiveSchool(t *testing.T) {
	school := entity.NewSchool("OLD", "Closed School")
	school.Active = false
	dir := newFakeDirectory(t, school)
	reg := NewRegistry(dir, 0, discard())

	_, err := reg.Resolve(context.Background(), "old")
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestRegistryRetriesAfterFailedOpen(t *testing.T) {
	dir := newFakeDirectory(t, entity.NewSchool("ABC", "Test School"))
	dir.openErr = errors.New("directory down")
	reg := NewRegistry(dir, 0, discard())

	_, err := reg.Resolve(context.Background(), "ABC")
	require.Error(t, err)

	// Failure must not poison the cache.
	dir.openErr = nil
	tenant, err := reg.Resolve(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, "ABC", tenant.Code)
}

func TestRegistryRevalidationEvictsOnPingFailure(t *testing.T) {
	dir := newFakeDirectory(t, entity.NewSchool("ABC", "Test School"))
	reg := NewRegistry(dir, time.Nanosecond, discard())

	first, err := reg.Resolve(context.Background(), "ABC")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	dir.pingErr = errors.New("cluster unreachable")
	_, err = reg.Resolve(context.Background(), "ABC")
	require.Error(t, err)

	// Next resolve reopens a fresh handle.
	dir.pingErr = nil
	second, err := reg.Resolve(context.Background(), "ABC")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.GreaterOrEqual(t, dir.pings, 1)
}

func TestRegistryZeroTTLSkipsPings(t *testing.T) {
	dir := newFakeDirectory(t, entity.NewSchool("ABC", "Test School"))
	reg := NewRegistry(dir, 0, discard())

	for i := 0; i < 3; i++ {
		_, err := reg.Resolve(context.Background(), "ABC")
		require.NoError(t, err)
	}
	assert.Zero(t, dir.pings)
}
