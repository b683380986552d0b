package leave

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	leavesvc "github.com/JayeshSardesai/ERP-sub004/internal/service/leave"
)

type CreateRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		start, err := parseDate(req.StartDate)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid start_date"))
			return
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid end_date"))
			return
		}

		created, err := handler.Create(r.Context(), leavesvc.CreateInput{
			TeacherID:   id.UserID,
			TeacherName: id.Name,
			SchoolCode:  id.SchoolCode,
			SubjectLine: req.Subject,
			Description: req.Description,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			logger.Error("failed to create leave request", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to create leave request: %v", err)))
			return
		}

		logger.Debug("leave request created", slog.String("id", created.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(map[string]interface{}{"leave_request": created}))
	}
}

// parseDate accepts a date-only value or a full timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
