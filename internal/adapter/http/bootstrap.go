package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"joiner/internal/adapter/http/routes"
	"joiner/internal/core/telemetry"
	"joiner/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests.
func StartServerWithConfig(ctx context.Context, container *Container, metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) error {
	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler:   container.AuthHandler,
		MemberHandler: container.MemberHandler,
		AuthService:   container.AuthService,
	}, metrics, logger, appConfig)

	slog.Info("Server starting",
		"port", appConfig.Port,
		"environment", appConfig.Environment,
		"rate_limit_enabled", appConfig.RateLimitEnabled,
		"https_enforced", appConfig.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("Server failed to start", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
