package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/JayeshSardesai/ERP-sub004/internal/config"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/http-server/api"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/logger"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	"github.com/JayeshSardesai/ERP-sub004/internal/notify"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/attendance"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/auth"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/leave"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/results"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/sos"
	"github.com/JayeshSardesai/ERP-sub004/internal/service/subjects"
	"github.com/JayeshSardesai/ERP-sub004/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting erp backend", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx := context.Background()

	db, err := repository.NewMongoClient(ctx, conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		os.Exit(1)
	}
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("directory", conf.Mongo.Directory),
	).Info("mongo client initialized")

	registry := repository.NewRegistry(db, conf.Mongo.PingTTL, lg)

	hub := ws.NewHub(lg)
	go hub.Run()

	authService := auth.NewService(registry, conf.Auth.Secret, conf.Auth.TokenTTL, lg)
	leaveService := leave.NewService(registry, lg)
	attendanceService := attendance.NewService(registry, lg)
	resultsService := results.NewService(registry, lg)
	subjectsService := subjects.NewService(registry, lg)

	sosService := sos.NewService(registry, db, lg)
	sosService.SetBroadcaster(hub)

	if conf.Telegram.Enabled {
		tg, err := notify.NewTelegram(conf, lg)
		if err != nil {
			lg.Error("failed to initialize telegram notifier", sl.Err(err))
		} else {
			sosService.SetNotifier(tg)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram notifier initialized")
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, api.Services{
		Auth:       authService,
		Leave:      leaveService,
		SOS:        sosService,
		Attendance: attendanceService,
		Results:    resultsService,
		Subjects:   subjectsService,
		Directory:  db,
		Verifier:   authService,
		Hub:        hub,
	})
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
