package leave

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

type UpdateStatusRequest struct {
	Status   string `json:"status"`
	Comments string `json:"admin_comments"`
}

func UpdateStatus(log *slog.Logger, handler Core) http.HandlerFunc {
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
		if !id.IsAdmin() {
			forbidden(w, r)
			return
		}

		requestID := chi.URLParam(r, "id")
		if requestID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("request id is required"))
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		updated, err := handler.Decide(r.Context(), id.SchoolCode, requestID, req.Status, id, req.Comments)
		if err != nil {
			logger.Error("failed to decide leave request", slog.String("id", requestID), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to update leave request: %v", err)))
			return
		}

		logger.Debug("leave request decided",
			slog.String("id", requestID),
			slog.String("status", req.Status),
		)
		render.JSON(w, r, response.Ok(map[string]interface{}{"leave_request": updated}))
	}
}
