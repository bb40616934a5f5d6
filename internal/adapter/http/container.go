package http

import (
	"time"

	"joiner/internal/adapter/database"
	"joiner/internal/adapter/database/repository"
	"joiner/internal/adapter/http/handler"
	"joiner/internal/core/port"
	"joiner/internal/core/service"
	"joiner/pkg/auth"
	"joiner/pkg/config"
)

type Container struct {
	IdentityRepo port.IdentityRepository
	MemberRepo   port.MemberRepository
	Sessions     port.SessionStore

	AuthService   port.AuthService
	MemberService port.MemberService

	AuthHandler   *handler.AuthHandler
	MemberHandler *handler.MemberHandler
}

func NewContainer(db *database.DB, sessions port.SessionStore, telemetry port.Telemetry, logger *config.LokiLogger, appConfig *config.AppConfig) *Container {
	identityRepo := repository.NewIdentityRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	authSvc := service.NewAuthService(identityRepo, sessions, auth.NewJWT(appConfig.JWTSecret), sessionTTL(appConfig), telemetry)
	memberSvc := service.NewMemberService(memberRepo, telemetry)

	return &Container{
		IdentityRepo: identityRepo,
		MemberRepo:   memberRepo,
		Sessions:     sessions,

		AuthService:   authSvc,
		MemberService: memberSvc,

		AuthHandler:   handler.NewAuthHandler(authSvc),
		MemberHandler: handler.NewMemberHandler(memberSvc, logger),
	}
}

func sessionTTL(appConfig *config.AppConfig) time.Duration {
	if appConfig.SessionTTL > 0 {
		return appConfig.SessionTTL
	}
	return service.DefaultSessionTTL
}
