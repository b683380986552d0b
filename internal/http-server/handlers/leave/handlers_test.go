package leave

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	leavesvc "github.com/JayeshSardesai/ERP-sub004/internal/service/leave"
)

type fakeCore struct {
	Core

	created   *entity.LeaveRequest
	decideErr error
}

func (f *fakeCore) Create(_ context.Context, in leavesvc.CreateInput) (*entity.LeaveRequest, error) {
	f.created = &entity.LeaveRequest{
		ID:          "lr-1",
		TeacherID:   in.TeacherID,
		SchoolCode:  in.SchoolCode,
		SubjectLine: in.SubjectLine,
		Status:      entity.LeaveStatusPending,
	}
	return f.created, nil
}

func (f *fakeCore) Decide(_ context.Context, _, _, _ string, _ *entity.Identity, _ string) (*entity.LeaveRequest, error) {
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	return &entity.LeaveRequest{ID: "lr-1", Status: entity.LeaveStatusApproved}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asIdentity(r *http.Request, id *entity.Identity) *http.Request {
	return r.WithContext(cont.PutIdentity(r.Context(), id))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateAsTeacher(t *testing.T) {
	core := &fakeCore{}
	handler := Create(discard(), core)

	body := `{"subject":"Medical","description":"Flu","start_date":"2025-06-02","end_date":"2025-06-04"}`
	req := httptest.NewRequest(http.MethodPost, "/leave/teacher/create", strings.NewReader(body))
	req = asIdentity(req, &entity.Identity{UserID: "t-1", Role: entity.RoleTeacher, SchoolCode: "ABC"})
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)
	require.NotNil(t, core.created)
	assert.Equal(t, "t-1", core.created.TeacherID)
	assert.Equal(t, "ABC", core.created.SchoolCode)
}

func TestCreateAsStudentForbidden(t *testing.T) {
	handler := Create(discard(), &fakeCore{})

	req := httptest.NewRequest(http.MethodPost, "/leave/teacher/create", strings.NewReader(`{}`))
	req = asIdentity(req, &entity.Identity{UserID: "s-1", Role: entity.RoleStudent, SchoolCode: "ABC"})
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestCreateWithoutIdentity(t *testing.T) {
	handler := Create(discard(), &fakeCore{})

	req := httptest.NewRequest(http.MethodPost, "/leave/teacher/create", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBadDate(t *testing.T) {
	handler := Create(discard(), &fakeCore{})

	body := `{"subject":"x","description":"y","start_date":"junk","end_date":"2025-06-04"}`
	req := httptest.NewRequest(http.MethodPost, "/leave/teacher/create", strings.NewReader(body))
	req = asIdentity(req, &entity.Identity{UserID: "t-1", Role: entity.RoleTeacher, SchoolCode: "ABC"})
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusConflictMapsToBadRequest(t *testing.T) {
	core := &fakeCore{decideErr: repository.ErrConflict}

	router := chi.NewRouter()
	router.Put("/leave/admin/{id}/status", UpdateStatus(discard(), core))

	req := httptest.NewRequest(http.MethodPut, "/leave/admin/lr-1/status", strings.NewReader(`{"status":"approved"}`))
	req = asIdentity(req, &entity.Identity{UserID: "a-1", Role: entity.RoleAdmin, SchoolCode: "ABC"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestUpdateStatusAsTeacherForbidden(t *testing.T) {
	router := chi.NewRouter()
	router.Put("/leave/admin/{id}/status", UpdateStatus(discard(), &fakeCore{}))

	req := httptest.NewRequest(http.MethodPut, "/leave/admin/lr-1/status", strings.NewReader(`{"status":"approved"}`))
	req = asIdentity(req, &entity.Identity{UserID: "t-1", Role: entity.RoleTeacher, SchoolCode: "ABC"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
