package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/config"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/attendance"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/auth"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/errors"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/leave"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/results"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/school"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/sos"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/handlers/subjects"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/middleware/apikey"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/middleware/authenticate"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/middleware/timeout"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	"github.com/JayeshSardesai/ERP-sub004/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Services carries every dependency the router mounts. The verifier
// doubles as the token check for both the HTTP middleware and the
// websocket upgrade.
type Services struct {
	Auth       auth.Core
	Leave      leave.Core
	SOS        sos.Core
	Attendance attendance.Core
	Results    results.Core
	Subjects   subjects.Core
	Directory  school.Core
	Verifier   authenticate.Verifier
	Hub        *ws.Hub
}

func New(conf *config.Config, log *slog.Logger, svc Services) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/auth/login", auth.Login(log, svc.Auth))

		// Platform directory admin, guarded by the static API key.
		v1.Route("/schools", func(r chi.Router) {
			r.Use(apikey.New(log, conf.Listen.ApiKey))
			r.Post("/register", school.Register(log, svc.Directory))
			r.Get("/list", school.List(log, svc.Directory))
			r.Put("/{code}/active", school.SetStatus(log, svc.Directory))
			r.Put("/{code}/settings", school.UpdateSettings(log, svc.Directory))
		})

		// Tenant endpoints, scoped to the caller's school by the token.
		v1.Group(func(g chi.Router) {
			g.Use(authenticate.New(log, svc.Verifier))

			g.Route("/leave", func(r chi.Router) {
				r.Post("/teacher/create", leave.Create(log, svc.Leave))
				r.Get("/teacher/my-requests", leave.MyRequests(log, svc.Leave))
				r.Delete("/teacher/{id}", leave.Delete(log, svc.Leave))
				r.Get("/admin/all", leave.All(log, svc.Leave))
				r.Get("/admin/pending", leave.Pending(log, svc.Leave))
				r.Put("/admin/{id}/status", leave.UpdateStatus(log, svc.Leave))
				r.Get("/admin/stats", leave.Stats(log, svc.Leave))
			})

			g.Route("/sos", func(r chi.Router) {
				r.Post("/create", sos.Create(log, svc.SOS))
				r.Get("/list", sos.List(log, svc.SOS))
				r.Put("/{id}/acknowledge", sos.Acknowledge(log, svc.SOS))
				r.Put("/{id}/resolve", sos.Resolve(log, svc.SOS))
			})

			g.Route("/attendance", func(r chi.Router) {
				r.Post("/mark", attendance.Mark(log, svc.Attendance))
				r.Get("/class", attendance.Class(log, svc.Attendance))
				r.Get("/student/{id}/summary", attendance.StudentSummary(log, svc.Attendance))
			})

			g.Route("/results", func(r chi.Router) {
				r.Post("/upsert", results.Upsert(log, svc.Results))
				r.Get("/student/{id}", results.Student(log, svc.Results))
				r.Get("/class", results.Class(log, svc.Results))
				r.Post("/migrate-legacy", results.MigrateLegacy(log, svc.Results))
			})

			g.Route("/subjects", func(r chi.Router) {
				r.Put("/", subjects.Upsert(log, svc.Subjects))
				r.Get("/", subjects.Get(log, svc.Subjects))
				r.Get("/all", subjects.List(log, svc.Subjects))
			})
		})
	})

	// Live alert feed; the token rides the query string.
	router.Get("/ws/sos", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(svc.Hub, svc.Verifier, log, w, r)
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
