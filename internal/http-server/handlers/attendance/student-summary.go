package attendance

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

func StudentSummary(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.attendance")

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
		// Students may only read their own summary.
		if id.IsStudent() && studentID != id.UserID {
			forbidden(w, r)
			return
		}

		from, err := parseDate(r.URL.Query().Get("from"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid from date"))
			return
		}
		to, err := parseDate(r.URL.Query().Get("to"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid to date"))
			return
		}

		summary, err := handler.StudentSummary(r.Context(), id.SchoolCode, studentID, from, to)
		if err != nil {
			logger.Error("failed to summarize attendance", slog.String("student_id", studentID), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to summarize attendance: %v", err)))
			return
		}

		render.JSON(w, r, response.Ok(summary))
	}
}
