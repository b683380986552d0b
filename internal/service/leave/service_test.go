package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
)

type fakeLeaveStore struct {
	repository.LeaveStore

	byID    map[string]*entity.LeaveRequest
	created []*entity.LeaveRequest
	deleted int64
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{byID: make(map[string]*entity.LeaveRequest)}
}

func (f *fakeLeaveStore) Create(_ context.Context, req *entity.LeaveRequest) error {
	f.created = append(f.created, req)
	f.byID[req.ID] = req
	return nil
}

func (f *fakeLeaveStore) GetByID(_ context.Context, id string) (*entity.LeaveRequest, error) {
	req, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return req, nil
}

func (f *fakeLeaveStore) DeletePending(_ context.Context, id, teacherID string) (int64, error) {
	req, ok := f.byID[id]
	if !ok || req.TeacherID != teacherID || !req.IsPending() {
		return 0, nil
	}
	delete(f.byID, id)
	f.deleted++
	return 1, nil
}

type fakeResolver struct {
	tenant *repository.Tenant
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*repository.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tenant, nil
}

func newService(store *fakeLeaveStore) *Service {
	tenant := &repository.Tenant{Code: "ABC", Leaves: store}
	return NewService(&fakeResolver{tenant: tenant}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput() CreateInput {
	return CreateInput{
		TeacherID:   "t-1",
		TeacherName: "T. Teacher",
		SchoolCode:  "abc",
		SubjectLine: "Medical leave",
		Description: "Flu",
		StartDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateComputesDayCount(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 3, req.NumberOfDays)
	assert.Equal(t, entity.LeaveStatusPending, req.Status)
	assert.Equal(t, "ABC", req.SchoolCode)
	assert.NotEmpty(t, req.ID)
	assert.Len(t, store.created, 1)
}

func TestCreateStoresMidnightUTC(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	loc := time.FixedZone("IST", 5*3600+1800)
	in := validInput()
	in.StartDate = time.Date(2025, time.June, 2, 14, 30, 12, 0, loc)
	in.EndDate = time.Date(2025, time.June, 4, 9, 5, 0, 0, loc)

	req, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), req.StartDate)
	assert.Equal(t, time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC), req.EndDate)
	assert.Equal(t, 3, req.NumberOfDays)
}

func TestCreateRejectsReversedRange(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	in := validInput()
	in.StartDate, in.EndDate = in.EndDate, in.StartDate

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.created, "nothing may persist on validation failure")
}

func TestCreateRejectsMissingFields(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	in := validInput()
	in.SubjectLine = ""

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.created)
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	svc := newService(newFakeLeaveStore())

	reviewer := &entity.Identity{UserID: "a-1", Role: entity.RoleAdmin}
	_, err := svc.Decide(context.Background(), "ABC", "id", "cancelled", reviewer, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Decide(context.Background(), "ABC", "id", entity.LeaveStatusPending, reviewer, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteOwnPendingRequest(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "ABC", req.ID, "t-1"))
	assert.EqualValues(t, 1, store.deleted)
}

func TestDeleteSomeoneElsesRequest(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "ABC", req.ID, "t-2")
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Zero(t, store.deleted)
}

func TestDeleteDecidedRequest(t *testing.T) {
	store := newFakeLeaveStore()
	svc := newService(store)

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	store.byID[req.ID].Status = entity.LeaveStatusApproved

	err = svc.Delete(context.Background(), "ABC", req.ID, "t-1")
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestDeleteUnknownRequest(t *testing.T) {
	svc := newService(newFakeLeaveStore())

	err := svc.Delete(context.Background(), "ABC", "missing", "t-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListForSchoolRejectsUnknownStatus(t *testing.T) {
	svc := newService(newFakeLeaveStore())

	_, err := svc.ListForSchool(context.Background(), "ABC", "weird")
	assert.ErrorIs(t, err, ErrValidation)
}
