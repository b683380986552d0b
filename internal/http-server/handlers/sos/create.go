package sos

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	sossvc "github.com/JayeshSardesai/ERP-sub004/internal/service/sos"
)

type CreateRequest struct {
	ClassName string `json:"class_name"`
	Section   string `json:"section"`
	Location  string `json:"location"`
	Message   string `json:"message"`
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
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
		if !id.IsStudent() {
			forbidden(w, r)
			return
		}

		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		alert, err := handler.Raise(r.Context(), sossvc.RaiseInput{
			StudentID:   id.UserID,
			StudentName: id.Name,
			ClassName:   req.ClassName,
			Section:     req.Section,
			SchoolCode:  id.SchoolCode,
			Location:    req.Location,
			Message:     req.Message,
		})
		if err != nil {
			logger.Error("failed to raise sos alert", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to raise alert: %v", err)))
			return
		}

		logger.Debug("sos alert raised", slog.String("id", alert.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(alert))
	}
}
