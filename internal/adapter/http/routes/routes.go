package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joiner/internal/adapter/http/handler"
	"joiner/internal/adapter/http/middleware"
	"joiner/internal/core/port"
	"joiner/internal/core/telemetry"
	"joiner/pkg/config"
)

type HandlersConfig struct {
	AuthHandler   *handler.AuthHandler
	MemberHandler *handler.MemberHandler
	AuthService   port.AuthService
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) *gin.Engine {
	router := gin.New()

	middleware.SetupGinMiddlewareWithConfig(router, metrics, logger, appConfig)

	router.Use(gin.Recovery())
	router.Use(middleware.CorsMiddleware())

	registerRoutes(router, handlers, middleware.RateLimit(metrics, logger, appConfig))

	return router
}

// SetupRouterForTests skips telemetry, logging and rate limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.CurrentMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CorsMiddleware())

	registerRoutes(router, handlers, func(c *gin.Context) { c.Next() })

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig, rateLimit gin.HandlerFunc) {
	router.GET("/health", health)

	v1 := router.Group("/api/v1")

	if handlers.AuthHandler != nil {
		setupPublicRoutes(v1, handlers.AuthHandler, rateLimit)
	}

	if handlers.MemberHandler != nil && handlers.AuthService != nil {
		setupProtectedRoutes(v1, handlers.MemberHandler, handlers.AuthService, rateLimit)
	}
}

func setupPublicRoutes(router *gin.RouterGroup, authHandler *handler.AuthHandler, rateLimit gin.HandlerFunc) {
	public := router.Group("/auth")
	public.Use(rateLimit)
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/logout", authHandler.Logout)
	}
}

func setupProtectedRoutes(router *gin.RouterGroup, memberHandler *handler.MemberHandler, authSvc port.AuthService, rateLimit gin.HandlerFunc) {
	members := router.Group("/members")
	members.Use(middleware.Authenticate(authSvc))
	members.Use(rateLimit)
	{
		members.POST("", memberHandler.Create)
		members.GET("/me", memberHandler.GetMyProfile)
		members.GET("/:id", memberHandler.Get)
		members.PATCH("/:id", memberHandler.Update)
	}

	admin := members.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", memberHandler.Filter)
		admin.GET("/search", memberHandler.Search)
		admin.DELETE("/:id", memberHandler.Delete)
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
