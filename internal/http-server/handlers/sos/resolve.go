package sos

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

func Resolve(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.sos")

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

		alertID := chi.URLParam(r, "id")
		if alertID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("alert id is required"))
			return
		}

		alert, err := handler.Resolve(r.Context(), id.SchoolCode, alertID, id)
		if err != nil {
			logger.Error("failed to resolve sos alert", slog.String("id", alertID), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to resolve alert: %v", err)))
			return
		}

		logger.Debug("sos alert resolved", slog.String("id", alertID))
		render.JSON(w, r, response.Ok(alert))
	}
}
