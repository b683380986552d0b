package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
)

type fakeUserStore struct {
	repository.UserStore

	byEmail map[string]*entity.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type fakeResolver struct {
	tenant *repository.Tenant
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*repository.Tenant, error) {
	return f.tenant, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*entity.User{
		"teacher@abc.edu": {
			ID:           "u-1",
			Name:         "T. Teacher",
			Email:        "teacher@abc.edu",
			Role:         entity.RoleTeacher,
			PasswordHash: string(hash),
			Active:       true,
		},
	}}
	tenant := &repository.Tenant{Code: "ABC", Users: users}
	return NewService(&fakeResolver{tenant: tenant}, "test-signing-key", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoginAndVerifyRoundtrip(t *testing.T) {
	svc := newTestService(t)

	token, user, err := svc.Login(context.Background(), "abc", "teacher@abc.edu", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "u-1", user.ID)

	id, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, entity.RoleTeacher, id.Role)
	assert.Equal(t, "ABC", id.SchoolCode)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "abc", "teacher@abc.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "abc", "nobody@abc.edu", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	svc := newTestService(t)
	other := NewService(&fakeResolver{tenant: &repository.Tenant{Code: "ABC"}}, "other-key", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	token, _, err := svc.Login(context.Background(), "abc", "teacher@abc.edu", "secret123")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*entity.User{
		"teacher@abc.edu": {ID: "u-1", Email: "teacher@abc.edu", Role: entity.RoleTeacher, PasswordHash: string(hash), Active: true},
	}}
	tenant := &repository.Tenant{Code: "ABC", Users: users}
	svc := NewService(&fakeResolver{tenant: tenant}, "test-signing-key", -time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	token, _, err := svc.Login(context.Background(), "abc", "teacher@abc.edu", "secret123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
