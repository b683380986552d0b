package sos

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	sossvc "github.com/JayeshSardesai/ERP-sub004/internal/service/sos"
)

type Core interface {
	Raise(ctx context.Context, in sossvc.RaiseInput) (*entity.SOSAlert, error)
	List(ctx context.Context, schoolCode, status string) ([]entity.SOSAlert, error)
	Acknowledge(ctx context.Context, schoolCode, id string, actor *entity.Identity) (*entity.SOSAlert, error)
	Resolve(ctx context.Context, schoolCode, id string, actor *entity.Identity) (*entity.SOSAlert, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, sossvc.ErrValidation), errors.Is(err, repository.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrForbidden):
		return http.StatusForbidden
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
