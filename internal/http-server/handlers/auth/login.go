package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

type LoginRequest struct {
	SchoolCode string `json:"school_code"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.auth")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if req.SchoolCode == "" || req.Email == "" || req.Password == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("school_code, email and password are required"))
			return
		}

		token, user, err := handler.Login(r.Context(), req.SchoolCode, req.Email, req.Password)
		if err != nil {
			logger.Warn("login failed", slog.String("school_code", req.SchoolCode), sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error("Login failed"))
			return
		}

		logger.Debug("login ok", slog.String("user_id", user.ID))
		render.JSON(w, r, response.Ok(LoginResponse{Token: token, User: user}))
	}
}
