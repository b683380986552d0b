package subjects

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	subjsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/subjects"
)

type Core interface {
	Upsert(ctx context.Context, in subjsvc.UpsertInput) (*entity.ClassSubjects, error)
	Get(ctx context.Context, schoolCode, className, section string) (*entity.ClassSubjects, error)
	List(ctx context.Context, schoolCode string) ([]entity.ClassSubjects, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, subjsvc.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrSchoolNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

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
