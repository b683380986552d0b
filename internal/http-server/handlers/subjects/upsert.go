package subjects

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	subjsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/subjects"
)

type UpsertRequest struct {
	ClassName string                    `json:"class_name"`
	Section   string                    `json:"section"`
	Subjects  []subjsvc.AssignmentInput `json:"subjects"`
}

func Upsert(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.subjects")

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

		var req UpsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		cs, err := handler.Upsert(r.Context(), subjsvc.UpsertInput{
			SchoolCode: id.SchoolCode,
			ClassName:  req.ClassName,
			Section:    req.Section,
			Subjects:   req.Subjects,
		})
		if err != nil {
			logger.Error("failed to upsert class subjects", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to save class subjects: %v", err)))
			return
		}

		logger.Debug("class subjects saved", slog.String("id", cs.ID))
		render.JSON(w, r, response.Ok(cs))
	}
}
