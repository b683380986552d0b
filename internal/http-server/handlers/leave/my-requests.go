package leave

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

func MyRequests(log *slog.Logger, handler Core) http.HandlerFunc {
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

		requests, err := handler.MyRequests(r.Context(), id.SchoolCode, id.UserID)
		if err != nil {
			logger.Error("failed to list own leave requests", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list leave requests: %v", err)))
			return
		}

		logger.Debug("own leave requests listed", slog.Int("count", len(requests)))
		render.JSON(w, r, response.Ok(map[string]interface{}{
			"leave_requests": requests,
			"count":          len(requests),
		}))
	}
}
