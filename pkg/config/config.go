package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const ServiceName = "joiner"

type AppConfig struct {
	Port        string
	MetricsPort string
	Environment string

	DatabaseURL string
	RedisURL    string
	SQLLog      bool

	JWTSecret  string
	SessionTTL time.Duration

	AdminEmail    string
	AdminPassword string

	OTLPEndpoint string
	LokiURL      string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:        "8080",
		MetricsPort: "9090",
		Environment: "development",

		DatabaseURL: "joiner.db",
		JWTSecret:   "change-me",
		SessionTTL:  3 * time.Hour,

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /api/v1/auth/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"POST /api/v1/auth/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"POST /api/v1/members": {
				Requests: 20,
				Window:   time.Minute,
			},
			"PATCH /api/v1/members/:id": {
				Requests: 20,
				Window:   time.Minute,
			},
			"/api/v1/members": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
	}
}

// Load reads the environment over GetDefaultConfig. Unset or unparsable
// variables keep their defaults.
func Load() *AppConfig {
	config := GetDefaultConfig()

	config.Port = stringEnv("PORT", config.Port)
	config.MetricsPort = stringEnv("METRICS_PORT", config.MetricsPort)
	config.Environment = stringEnv("ENVIRONMENT", config.Environment)

	config.DatabaseURL = stringEnv("DATABASE_URL", config.DatabaseURL)
	config.RedisURL = stringEnv("REDIS_URL", config.RedisURL)
	config.SQLLog = boolEnv("SQL_LOG", config.SQLLog)

	config.JWTSecret = stringEnv("JWT_SECRET", config.JWTSecret)
	config.SessionTTL = durationEnv("SESSION_TTL", config.SessionTTL)

	config.AdminEmail = stringEnv("ADMIN_EMAIL", config.AdminEmail)
	config.AdminPassword = stringEnv("ADMIN_PASSWORD", config.AdminPassword)

	config.OTLPEndpoint = stringEnv("OTEL_EXPORTER_OTLP_ENDPOINT", config.OTLPEndpoint)
	config.LokiURL = stringEnv("LOKI_URL", config.LokiURL)

	config.RateLimitEnabled = boolEnv("RATE_LIMIT_ENABLED", config.RateLimitEnabled)
	config.EnforceHTTPS = boolEnv("ENFORCE_HTTPS", config.IsProduction())

	return config
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c *AppConfig) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func stringEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
