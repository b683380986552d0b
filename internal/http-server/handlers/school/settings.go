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

type UpdateSettingsRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	SOSChatID int64  `json:"sos_chat_id"`
}

func UpdateSettings(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		err := handler.UpdateSchoolSettings(r.Context(), code, req.Name, req.Address, req.Phone, req.SOSChatID)
		if err != nil {
			logger.Error("failed to update school settings", slog.String("code", code), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to update school settings: %v", err)))
			return
		}

		school, err := handler.GetSchoolByCode(r.Context(), code)
		if err != nil {
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to load school: %v", err)))
			return
		}

		logger.Debug("school settings updated", slog.String("code", school.Code))
		render.JSON(w, r, response.Ok(school))
	}
}
