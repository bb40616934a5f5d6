package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"joiner/internal/core/telemetry"
	. "joiner/pkg"
	"joiner/pkg/config"
	ct "joiner/pkg/context"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

func LoggingMiddleware(logger *config.LokiLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		current := GetCurrent(c)
		principalID, _ := current.GetString(ct.PrincipalKey)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", GetClientIP(c)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", current.RequestID()),
			zap.String("principal_id", principalID),
		}

		if c.Writer.Status() >= 500 {
			logger.ErrorWithTrace(c.Request.Context(), "HTTP Request", fields...)
			return
		}

		logger.InfoWithTrace(c.Request.Context(), "HTTP Request", fields...)
	}
}

// SetupGinMiddlewareWithConfig installs the global chain. Rate limiting is
// attached per route group by RateLimit so it can key on the principal.
func SetupGinMiddlewareWithConfig(router *gin.Engine, metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) {
	httpsEnforcer := config.NewHTTPSEnforcer(logger.Logger.Logger, appConfig.EnforceHTTPS)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(CurrentMiddleware())
	router.Use(otelgin.Middleware(config.ServiceName))
	router.Use(LoggingMiddleware(logger))
	router.Use(MetricsMiddleware(metrics))
}

func RateLimit(metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) gin.HandlerFunc {
	if !appConfig.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}

	rateLimiter := config.NewRateLimiter(logger.Logger.Logger, metrics, appConfig.RateLimitConfigs)
	return rateLimiter.RateLimitMiddleware()
}

func CorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Accept-Language, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
