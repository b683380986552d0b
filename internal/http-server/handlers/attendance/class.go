package attendance

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

func Class(log *slog.Logger, handler Core) http.HandlerFunc {
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
		if !id.IsTeacher() && !id.IsAdmin() {
			forbidden(w, r)
			return
		}

		className := r.URL.Query().Get("class")
		section := r.URL.Query().Get("section")
		if className == "" || section == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("class and section are required"))
			return
		}

		date, err := parseDate(r.URL.Query().Get("date"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid date"))
			return
		}

		records, err := handler.ClassDay(r.Context(), id.SchoolCode, className, section, date)
		if err != nil {
			logger.Error("failed to list class attendance", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list attendance: %v", err)))
			return
		}

		logger.Debug("class attendance listed", slog.Int("count", len(records)))
		render.JSON(w, r, response.Ok(records))
	}
}
