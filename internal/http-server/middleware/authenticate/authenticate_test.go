package authenticate

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
)

type fakeVerifier struct {
	identity *entity.Identity
	err      error
}

func (f *fakeVerifier) VerifyToken(_ string) (*entity.Identity, error) {
	return f.identity, f.err
}

func serve(t *testing.T, auth Verifier, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), auth)(next)

	req := httptest.NewRequest(http.MethodGet, "/leave/teacher/my-requests", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { handler.ServeHTTP(rec, req) })
	return rec, called
}

func TestPassesVerifiedIdentity(t *testing.T) {
	verifier := &fakeVerifier{identity: &entity.Identity{UserID: "u-1", SchoolCode: "ABC"}}

	var got *entity.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = cont.GetIdentity(r.Context())
	})

	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), verifier)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "ABC", got.SchoolCode)
}

func TestRejectsMissingHeader(t *testing.T) {
	rec, called := serve(t, &fakeVerifier{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRejectsBareBearerHeader(t *testing.T) {
	rec, called := serve(t, &fakeVerifier{identity: &entity.Identity{}}, "Bearer")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Token not found")
}

func TestRejectsEmptyBearerToken(t *testing.T) {
	rec, called := serve(t, &fakeVerifier{identity: &entity.Identity{}}, "Bearer ")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRejectsInvalidToken(t *testing.T) {
	rec, called := serve(t, &fakeVerifier{err: errors.New("token expired")}, "Bearer stale")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
