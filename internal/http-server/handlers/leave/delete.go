package leave

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

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.leave")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := caller(w, r)
		if id == nil {
			return
		}
		if !id.IsTeacher() {
			forbidden(w, r)
			return
		}

		requestID := chi.URLParam(r, "id")
		if requestID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		if err := handler.Delete(r.Context(), id.SchoolCode, requestID, id.UserID); err != nil {
			logger.Error("failed to delete leave request", slog.String("id", requestID), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to delete leave request: %v", err)))
			return
		}

		logger.Debug("leave request deleted", slog.String("id", requestID))
		render.JSON(w, r, response.OkMessage("Leave request deleted successfully"))
	}
}
