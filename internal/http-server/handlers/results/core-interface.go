package results

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	resultsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/results"
)

type Core interface {
	UpsertScore(ctx context.Context, in resultsvc.ScoreInput) error
	StudentYear(ctx context.Context, schoolCode, studentID, academicYear string) (*entity.Result, error)
	ClassYear(ctx context.Context, schoolCode, className, section, academicYear string) ([]entity.Result, error)
	MigrateLegacy(ctx context.Context, schoolCode string) (*entity.MigrationReport, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, resultsvc.ErrValidation):
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
