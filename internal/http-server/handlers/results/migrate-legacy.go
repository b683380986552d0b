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

func MigrateLegacy(log *slog.Logger, handler Core) http.HandlerFunc {
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
		if !id.IsAdmin() {
			forbidden(w, r)
			return
		}

		report, err := handler.MigrateLegacy(r.Context(), id.SchoolCode)
		if err != nil {
			logger.Error("legacy result migration failed", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Migration failed: %v", err)))
			return
		}

		logger.Info("legacy result migration finished",
			slog.Int("groups", report.GroupsMigrated),
			slog.Int("rows", report.RowsConsumed),
		)
		render.JSON(w, r, response.Ok(report))
	}
}
