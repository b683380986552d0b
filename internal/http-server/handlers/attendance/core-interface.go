package attendance

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/cont"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	attsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/attendance"
)

type Core interface {
	Mark(ctx context.Context, in attsvc.MarkInput) (int, error)
	ClassDay(ctx context.Context, schoolCode, className, section string, date time.Time) ([]entity.AttendanceRecord, error)
	StudentSummary(ctx context.Context, schoolCode, studentID string, from, to time.Time) (*entity.AttendanceSummary, error)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, attsvc.ErrValidation):
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

// parseDate accepts a date-only value or a full timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
