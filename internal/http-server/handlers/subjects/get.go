package subjects

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
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

		className := r.URL.Query().Get("class")
		section := r.URL.Query().Get("section")
		if className == "" || section == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("class and section are required"))
			return
		}

		cs, err := handler.Get(r.Context(), id.SchoolCode, className, section)
		if err != nil {
			logger.Error("failed to load class subjects", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to load class subjects: %v", err)))
			return
		}

		render.JSON(w, r, response.Ok(cs))
	}
}
