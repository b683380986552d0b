package school

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := r.URL.Query().Get("status")
		if status == "" {
			status = "all"
		}

		schools, err := handler.GetSchools(r.Context(), status)
		if err != nil {
			logger.Error("failed to list schools", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list schools: %v", err)))
			return
		}

		logger.Debug("schools listed", slog.Int("count", len(schools)))
		render.JSON(w, r, response.Ok(schools))
	}
}
