package school

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

type SetStatusRequest struct {
	Active bool `json:"active"`
}

func SetStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		code := chi.URLParam(r, "code")
		if code == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("school code is required"))
			return
		}

		var req SetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := handler.SetSchoolActive(r.Context(), code, req.Active); err != nil {
			logger.Error("failed to set school status", slog.String("code", code), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to set school status: %v", err)))
			return
		}

		logger.Debug("school status updated", slog.String("code", code), slog.Bool("active", req.Active))
		render.JSON(w, r, response.OkMessage("School status updated successfully"))
	}
}
