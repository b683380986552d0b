package attendance

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	attsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/attendance"
)

type MarkRequest struct {
	ClassName string             `json:"class_name"`
	Section   string             `json:"section"`
	Date      string             `json:"date"`
	Session   string             `json:"session"`
	Entries   []attsvc.MarkEntry `json:"entries"`
}

func Mark(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.attendance")

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

		var req MarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid date"))
			return
		}

		count, err := handler.Mark(r.Context(), attsvc.MarkInput{
			SchoolCode: id.SchoolCode,
			ClassName:  req.ClassName,
			Section:    req.Section,
			Date:       date,
			Session:    req.Session,
			MarkedBy:   id.UserID,
			Entries:    req.Entries,
		})
		if err != nil {
			logger.Error("failed to mark attendance", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to mark attendance: %v", err)))
			return
		}

		logger.Debug("attendance marked", slog.Int("count", count))
		render.JSON(w, r, response.Ok(map[string]int{"marked": count}))
	}
}
