package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

// TenantDatabase selects the tenant database for a normalized school code.
func (m *MongoDB) TenantDatabase(code string) *mongo.Database {
	return m.client.Database(m.tenantDatabaseName(code))
}

// Tenant bundles one school's database handle with its typed stores.
// The set is built once when the tenant is first resolved.
type Tenant struct {
	Code string

	Leaves     LeaveStore
	Alerts     SOSStore
	Attendance AttendanceStore
	Results    ResultStore
	Subjects   SubjectStore
	Users      UserStore
}

// directory is the slice of MongoDB the registry needs. Kept narrow so
// tests can stand in a fake.
type directory interface {
	GetSchoolByCode(ctx context.Context, code string) (*entity.School, error)
	TenantDatabase(code string) *mongo.Database
	Ping(ctx context.Context) error
}

type tenantEntry struct {
	once   sync.Once
	tenant *Tenant
	err    error

	mu        sync.Mutex
	checkedAt time.Time
}

// Registry resolves school codes to live tenant handles. One handle per
// code for the life of the process; creation is guarded per key so two
// concurrent first requests cannot open two handles.
type Registry struct {
	dir     directory
	pingTTL time.Duration

	mu      sync.Mutex
	tenants map[string]*tenantEntry

	log *slog.Logger
}

// NewRegistry builds a tenant registry. pingTTL bounds how long a cached
// handle is trusted without re-validating the cluster; zero disables
// re-validation.
func NewRegistry(dir directory, pingTTL time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		dir:     dir,
		pingTTL: pingTTL,
		tenants: make(map[string]*tenantEntry),
		log:     logger.With(sl.Module("tenant-registry")),
	}
}

// Resolve returns the tenant handle for a school code, opening it on
// first use. Codes are case-insensitive: "abc" and "ABC" share a handle.
// Unknown or deactivated schools fail with ErrSchoolNotFound.
func (r *Registry) Resolve(ctx context.Context, schoolCode string) (*Tenant, error) {
	code := entity.NormalizeSchoolCode(schoolCode)
	if code == "" {
		return nil, ErrSchoolNotFound
	}

	r.mu.Lock()
	entry, ok := r.tenants[code]
	if !ok {
		entry = &tenantEntry{}
		r.tenants[code] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		entry.tenant, entry.err = r.open(ctx, code)
		entry.checkedAt = time.Now()
	})
	if entry.err != nil {
		// Drop the failed entry so a later request can retry the open.
		r.evict(code, entry)
		return nil, entry.err
	}

	if err := r.revalidate(ctx, code, entry); err != nil {
		return nil, err
	}

	return entry.tenant, nil
}

func (r *Registry) open(ctx context.Context, code string) (*Tenant, error) {
	school, err := r.dir.GetSchoolByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !school.IsActive() {
		return nil, ErrSchoolNotFound
	}

	db := r.dir.TenantDatabase(code)
	tenant := &Tenant{
		Code:       code,
		Leaves:     NewLeaveStore(db),
		Alerts:     NewSOSStore(db),
		Attendance: NewAttendanceStore(db),
		Results:    NewResultStore(db),
		Subjects:   NewSubjectStore(db),
		Users:      NewUserStore(db),
	}

	r.log.Info("tenant opened",
		slog.String("school_code", code),
		slog.String("database", db.Name()),
	)
	return tenant, nil
}

// revalidate pings the cluster when the entry is older than the TTL and
// evicts the handle on failure so the next resolve reconnects.
func (r *Registry) revalidate(ctx context.Context, code string, entry *tenantEntry) error {
	if r.pingTTL <= 0 {
		return nil
	}

	entry.mu.Lock()
	stale := time.Since(entry.checkedAt) > r.pingTTL
	if stale {
		// Claim the check before releasing the lock so concurrent
		// resolves do not pile up pings.
		entry.checkedAt = time.Now()
	}
	entry.mu.Unlock()

	if !stale {
		return nil
	}

	if err := r.dir.Ping(ctx); err != nil {
		r.evict(code, entry)
		r.log.Warn("tenant handle dropped after failed ping",
			slog.String("school_code", code),
			sl.Err(err),
		)
		return fmt.Errorf("tenant %s unavailable: %w", code, err)
	}
	return nil
}

func (r *Registry) evict(code string, entry *tenantEntry) {
	r.mu.Lock()
	if r.tenants[code] == entry {
		delete(r.tenants, code)
	}
	r.mu.Unlock()
}
