package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Jpcostan/rise-and-move-ios/internal/app"
	"github.com/Jpcostan/rise-and-move-ios/internal/config"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/handler"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/kvstore"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/notifier"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/repository"
	"github.com/Jpcostan/rise-and-move-ios/internal/infra/resync"
	"github.com/Jpcostan/rise-and-move-ios/internal/observability/logging"
	"github.com/Jpcostan/rise-and-move-ios/internal/observability/middleware"
	"github.com/Jpcostan/rise-and-move-ios/internal/observability/tracing"
)

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logging.Setup(os.Stdout, cfg.Log.Level)
	tracing.SetupPropagator()

	transportCfg, err := transportConfig(cfg)
	if err != nil {
		slog.Error("reminder transport configuration error", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(cfg.Database, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}()

	transport, err := notifier.NewTransport(ctx, transportCfg)
	if err != nil {
		slog.Error("failed to initialize reminder transport", "error", err)
		return 1
	}

	reminderNotifier := notifier.NewWatermillNotifier(transport.Publisher)
	defer func() {
		if err := reminderNotifier.Close(); err != nil {
			slog.Warn("failed to close notifier", "error", err)
		}
	}()

	clock, err := app.SystemClock(cfg.Alarm.TimeZone)
	if err != nil {
		slog.Error("failed to initialize clock", "error", err)
		return 1
	}

	alarmRepo := repository.NewAlarmRepository(kvstore.NewGormSlot(db), cfg.Database.SlotKey)
	reconciler := app.NewReconciler(reminderNotifier, clock)
	store := app.NewAlarmStore(alarmRepo, reconciler)

	// A corrupt or unreadable collection starts the process empty.
	if err := store.Load(ctx); err != nil {
		slog.Warn("starting with an empty alarm collection", "error", err)
	}

	coordinator := app.NewLifecycleCoordinator(store, reconciler)
	alarmUseCase := app.NewAlarmUseCase(store, coordinator, reminderNotifier, clock, app.AlarmUseCaseConfig{
		DefaultEnabled: cfg.Alarm.DefaultEnabled,
	})
	alarmHandler := handler.NewAlarmHandler(alarmUseCase)

	eventRouter, err := notifier.NewEventRouter(transport.Subscriber, coordinator)
	if err != nil {
		slog.Error("failed to create reminder event router", "error", err)
		return 1
	}

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- eventRouter.Run(ctx)
	}()

	resyncJob := resync.NewJob(store, clock)
	if _, err := resyncJob.Schedule(cfg.Alarm.ResyncSchedule); err != nil {
		slog.Error("failed to schedule resync", "error", err)
		return 1
	}

	resyncJob.Start()
	defer resyncJob.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      setupRouter(alarmHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", "error", err)
			return 1
		}

		if err := eventRouter.Close(); err != nil {
			slog.Warn("failed to close reminder event router", "error", err)
		}

		slog.Info("server exited properly")

		return 0

	case err := <-routerErr:
		slog.Error("reminder event router stopped", "error", err)

		return 1

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}

		slog.Error("server exited with error", "error", err)

		return 1
	}
}

func initDatabase(cfg config.DatabaseConfig, level slog.Level) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(cfg.SlowThreshold, level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := kvstore.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate slot table: %w", err)
	}

	slog.Info("database initialized",
		"driver", cfg.Driver,
	)

	return db, nil
}

func setupRouter(alarmHandler *handler.AlarmHandler) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.PanicRecoveryGin(),
		middleware.Gin(middleware.GinConfig{
			SkipPaths:  []string{"/ping"},
			TracerName: "alarm.http",
		}),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	alarmHandler.RegisterRoutes(v1)

	return router
}
