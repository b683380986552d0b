package results

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
		mod := sl.Module("http.handlers.results")

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
		year := r.URL.Query().Get("year")
		if className == "" || section == "" || year == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("class, section and year are required"))
			return
		}

		results, err := handler.ClassYear(r.Context(), id.SchoolCode, className, section, year)
		if err != nil {
			logger.Error("failed to list class results", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list results: %v", err)))
			return
		}

		logger.Debug("class results listed", slog.Int("count", len(results)))
		render.JSON(w, r, response.Ok(results))
	}
}
