package results

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

func Student(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.results")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := caller(w, r)
		if id == nil {
			return
		}

		studentID := chi.URLParam(r, "id")
		if studentID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("student id is required"))
			return
		}
		// Students may only read their own results.
		if id.IsStudent() && studentID != id.UserID {
			forbidden(w, r)
			return
		}

		year := r.URL.Query().Get("year")
		if year == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("year is required"))
			return
		}

		result, err := handler.StudentYear(r.Context(), id.SchoolCode, studentID, year)
		if err != nil {
			logger.Error("failed to load student result", slog.String("student_id", studentID), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to load result: %v", err)))
			return
		}

		render.JSON(w, r, response.Ok(result))
	}
}
