package leave

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	leavesvc "github.com/JayeshSardesai/ERP-sub004/internal/service/leave"
)

type Core interface {
	Create(ctx context.Context, in leavesvc.CreateInput) (*entity.LeaveRequest, error)
	MyRequests(ctx context.Context, schoolCode, teacherID string) ([]entity.LeaveRequest, error)
	ListForSchool(ctx context.Context, schoolCode, status string) ([]leavesvc.RequestWithIdentity, error)
	Pending(ctx context.Context, schoolCode string) ([]entity.LeaveRequest, error)
	Decide(ctx context.Context, schoolCode, id, status string, reviewer *entity.Identity, comments string) (*entity.LeaveRequest, error)
	Delete(ctx context.Context, schoolCode, id, teacherID string) error
	Stats(ctx context.Context, schoolCode string) (*entity.LeaveStats, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, leavesvc.ErrValidation), errors.Is(err, repository.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrSchoolNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// caller extracts the authenticated identity, rendering a 401 when the
// request slipped past the middleware without one.
func caller(w http.ResponseWriter, r *http.Request) *entity.Identity {
	id := cont.GetIdentity(r.Context())
	if id == nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
	}
	return id
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusForbidden)
	render.JSON(w, r, response.Error("Access denied"))
}
