package sos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
)

type fakeSOSStore struct {
	repository.SOSStore

	created []*entity.SOSAlert
	byID    map[string]*entity.SOSAlert
}

func newFakeSOSStore() *fakeSOSStore {
	return &fakeSOSStore{byID: make(map[string]*entity.SOSAlert)}
}

func (f *fakeSOSStore) Create(_ context.Context, alert *entity.SOSAlert) error {
	f.created = append(f.created, alert)
	f.byID[alert.ID] = alert
	return nil
}

func (f *fakeSOSStore) Acknowledge(_ context.Context, id, actor string) (*entity.SOSAlert, error) {
	alert, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if alert.Status != entity.SOSStatusActive {
		return nil, repository.ErrConflict
	}
	alert.Status = entity.SOSStatusAcknowledged
	alert.AcknowledgedBy = actor
	return alert, nil
}

type fakeResolver struct {
	tenant *repository.Tenant
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*repository.Tenant, error) {
	return f.tenant, nil
}

type fakeDirectory struct {
	school *entity.School
	err    error
}

func (f *fakeDirectory) GetSchoolByCode(_ context.Context, _ string) (*entity.School, error) {
	return f.school, f.err
}

type fakeBroadcaster struct {
	alerts  []*entity.SOSAlert
	updates []*entity.SOSAlert
}

func (f *fakeBroadcaster) BroadcastAlert(_ string, alert *entity.SOSAlert) {
	f.alerts = append(f.alerts, alert)
}

func (f *fakeBroadcaster) BroadcastUpdate(_ string, alert *entity.SOSAlert) {
	f.updates = append(f.updates, alert)
}

type fakeNotifier struct {
	chatIDs []int64
	err     error
}

func (f *fakeNotifier) NotifySOS(chatID int64, _ *entity.SOSAlert) error {
	f.chatIDs = append(f.chatIDs, chatID)
	return f.err
}

func newService(store *fakeSOSStore, dir *fakeDirectory) *Service {
	tenant := &repository.Tenant{Code: "ABC", Alerts: store}
	return NewService(&fakeResolver{tenant: tenant}, dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRaise() RaiseInput {
	return RaiseInput{
		StudentID:   "s-1",
		StudentName: "S. Student",
		ClassName:   "10",
		Section:     "A",
		SchoolCode:  "abc",
		Location:    "playground",
		Message:     "help",
	}
}

func TestRaiseFansOut(t *testing.T) {
	store := newFakeSOSStore()
	dir := &fakeDirectory{school: &entity.School{Code: "ABC", SOSChatID: 42}}
	svc := newService(store, dir)

	hub := &fakeBroadcaster{}
	bot := &fakeNotifier{}
	svc.SetBroadcaster(hub)
	svc.SetNotifier(bot)

	alert, err := svc.Raise(context.Background(), validRaise())
	require.NoError(t, err)

	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, entity.SOSStatusActive, alert.Status)
	assert.Equal(t, "ABC", alert.SchoolCode)
	require.Len(t, store.created, 1)
	require.Len(t, hub.alerts, 1)
	assert.Same(t, alert, hub.alerts[0])
	assert.Equal(t, []int64{42}, bot.chatIDs)
}

func TestRaiseRejectsMissingLocation(t *testing.T) {
	store := newFakeSOSStore()
	svc := newService(store, &fakeDirectory{})

	in := validRaise()
	in.Location = ""

	_, err := svc.Raise(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.created)
}

func TestRaiseSurvivesNotifierFailure(t *testing.T) {
	store := newFakeSOSStore()
	dir := &fakeDirectory{school: &entity.School{Code: "ABC", SOSChatID: 42}}
	svc := newService(store, dir)
	svc.SetNotifier(&fakeNotifier{err: errors.New("telegram down")})

	_, err := svc.Raise(context.Background(), validRaise())
	assert.NoError(t, err)
}

func TestRaiseSkipsNotifyWithoutChatID(t *testing.T) {
	store := newFakeSOSStore()
	svc := newService(store, &fakeDirectory{school: &entity.School{Code: "ABC"}})

	bot := &fakeNotifier{}
	svc.SetNotifier(bot)

	_, err := svc.Raise(context.Background(), validRaise())
	require.NoError(t, err)
	assert.Empty(t, bot.chatIDs)
}

func TestAcknowledgeBroadcastsUpdate(t *testing.T) {
	store := newFakeSOSStore()
	svc := newService(store, &fakeDirectory{})

	hub := &fakeBroadcaster{}
	svc.SetBroadcaster(hub)

	alert, err := svc.Raise(context.Background(), validRaise())
	require.NoError(t, err)

	actor := &entity.Identity{UserID: "staff-1"}
	updated, err := svc.Acknowledge(context.Background(), "ABC", alert.ID, actor)
	require.NoError(t, err)

	assert.Equal(t, entity.SOSStatusAcknowledged, updated.Status)
	assert.Equal(t, "staff-1", updated.AcknowledgedBy)
	require.Len(t, hub.updates, 1)

	_, err = svc.Acknowledge(context.Background(), "ABC", alert.ID, actor)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newService(newFakeSOSStore(), &fakeDirectory{})

	_, err := svc.List(context.Background(), "ABC", "bogus")
	assert.ErrorIs(t, err, ErrValidation)
}
