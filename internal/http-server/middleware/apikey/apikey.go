package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

// New guards platform endpoints with a static API key carried in the
// X-API-Key header. An empty configured key disables the routes.
func New(log *slog.Logger, key string) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.apikey")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Platform API disabled"))
				return
			}

			got := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				log.With(mod,
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				).Warn("api key rejected")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
