package school

import (
	"context"
	"errors"
	"net/http"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
)

type Core interface {
	RegisterSchool(ctx context.Context, school *entity.School) error
	GetSchoolByCode(ctx context.Context, code string) (*entity.School, error)
	GetSchools(ctx context.Context, status string) ([]entity.School, error)
	SetSchoolActive(ctx context.Context, code string, active bool) error
	UpdateSchoolSettings(ctx context.Context, code string, name, address, phone string, sosChatID int64) error
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrSchoolNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
