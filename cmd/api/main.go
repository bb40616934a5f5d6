package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"joiner/internal/adapter/database"
	"joiner/internal/adapter/database/postgres"
	"joiner/internal/adapter/database/sqlite"
	api "joiner/internal/adapter/http"
	"joiner/internal/adapter/session"
	"joiner/internal/adapter/telemetry"
	"joiner/internal/core/port"
	"joiner/pkg/config"
)

const serviceVersion = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", config.ServiceName))

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := config.NewLokiLogger(config.ServiceName, appConfig.LokiURL)
	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}
	defer logger.Sync()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    config.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    appConfig.Environment,
		MetricsPort:    appConfig.MetricsPort,
		OTLPEndpoint:   appConfig.OTLPEndpoint,
	}, slog.Default())
	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}
	defer tel.Shutdown(context.Background())

	tel.AppMetrics.StartSystemMetrics(ctx)

	db, err := openDatabase(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()
	db.Metrics = tel.AppMetrics

	sessions, err := sessionStore(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to open session store:", err)
	}

	container := api.NewContainer(db, sessions, tel.NewTelemetryProbe(slog.Default()), logger, appConfig)

	if err := container.AuthService.EnsureAdmin(ctx, appConfig.AdminEmail, appConfig.AdminPassword); err != nil {
		log.Fatal("Failed to provision administrator:", err)
	}

	if err := api.StartServerWithConfig(ctx, container, tel.AppMetrics, logger, appConfig); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func openDatabase(ctx context.Context, appConfig *config.AppConfig) (*database.DB, error) {
	opts := database.Options{Name: config.ServiceName, SQLLog: appConfig.SQLLog}

	if appConfig.UsesPostgres() {
		return postgres.NewDB(ctx, appConfig.DatabaseURL, opts)
	}

	return sqlite.NewDB(appConfig.DatabaseURL, opts)
}

func sessionStore(ctx context.Context, appConfig *config.AppConfig) (port.SessionStore, error) {
	if appConfig.RedisURL == "" {
		slog.Info("Using in-process session store")
		return session.NewMemoryStore(), nil
	}

	client, err := session.NewRedisClient(ctx, appConfig.RedisURL)
	if err != nil {
		return nil, err
	}

	return session.NewRedisStore(client), nil
}
