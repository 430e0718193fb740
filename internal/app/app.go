package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"team-analytics/internal/app/rest"
	"team-analytics/internal/config"
	v1 "team-analytics/internal/http/v1"
	"team-analytics/internal/lib/migrator"
	"team-analytics/internal/repo"
	"team-analytics/internal/service"
	"team-analytics/internal/storage/files"
	"team-analytics/internal/storage/postgresql"
	"time"
)

type App struct {
	log     *slog.Logger
	storage *postgresql.Storage
	restApp *rest.App
}

func MustNew(log *slog.Logger) *App {
	cfg := config.MustLoad()

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic(err)
	}

	storage := postgresql.Init(cfg.Postgres)

	userRepo := repo.NewUserRepo(storage.GetDB())
	recordRepo := repo.NewRecordRepo(storage.GetDB())
	vizRepo := repo.NewVisualizationRepo(storage.GetDB())

	artifactStore := files.NewStore(cfg.Files.BaseDir)

	userService := service.NewUserService(log, userRepo)
	recordService := service.NewRecordService(log, recordRepo)
	vizService := service.NewVisualizationService(
		log, vizRepo, recordRepo, userRepo, artifactStore, cfg.Charts.Workers)

	routerDependencies := v1.RouterDependencies{
		UserService:          userService,
		RecordService:        recordService,
		VisualizationService: vizService,
	}

	restApp := rest.New(
		log,
		&routerDependencies,
		cfg.Server.Port,
	)

	return &App{
		log:     log,
		storage: storage,
		restApp: restApp,
	}
}

func (a *App) MustRun() {
	const op = "app.MustRun"
	a.log.With(slog.String("op", op)).Info("starting application")

	if err := a.restApp.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func (a *App) GracefulShutdown() {
	const op = "app.GracefulShutdown"
	a.log.With(slog.String("op", op)).Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.restApp.Stop(ctx); err != nil {
		a.log.Error("failed to stop HTTP server", "error", err)
	}

	if a.storage != nil {
		a.storage.Close()
		a.log.Info("database connection closed")
	}
}
