package school

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

type RegisterRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	SOSChatID int64  `json:"sos_chat_id"`
}

func Register(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if req.Code == "" || req.Name == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("code and name are required"))
			return
		}

		school := entity.NewSchool(req.Code, req.Name)
		school.Address = req.Address
		school.Phone = req.Phone
		school.SOSChatID = req.SOSChatID

		if err := handler.RegisterSchool(r.Context(), school); err != nil {
			logger.Error("failed to register school", slog.String("code", school.Code), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to register school: %v", err)))
			return
		}

		logger.Info("school registered", slog.String("code", school.Code))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(school))
	}
}
