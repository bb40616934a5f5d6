package http

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joiner/internal/adapter/session"
	"joiner/internal/core/telemetry"
	"joiner/pkg/config"
	. "joiner/pkg/test"
)

func newTestContainer(appConfig *config.AppConfig) *Container {
	return NewContainer(InitTestDB(), session.NewMemoryStore(), telemetry.NewNoOpProbe(),
		config.NewNopLokiLogger(config.ServiceName), appConfig)
}

func TestNewContainerWiresServices(t *testing.T) {
	appConfig := config.GetDefaultConfig()
	container := newTestContainer(appConfig)

	require.NotNil(t, container.AuthService)
	require.NotNil(t, container.MemberService)
	assert.NotNil(t, container.AuthHandler)
	assert.NotNil(t, container.MemberHandler)

	require.NoError(t, container.AuthService.EnsureAdmin(context.Background(), "root@example.com", "root-password-2024"))
}

func TestSessionTTLFallsBackToDefault(t *testing.T) {
	appConfig := config.GetDefaultConfig()
	appConfig.SessionTTL = 0

	assert.Equal(t, 3*time.Hour, sessionTTL(appConfig))

	appConfig.SessionTTL = time.Minute
	assert.Equal(t, time.Minute, sessionTTL(appConfig))
}

func TestStartServerStopsOnCancel(t *testing.T) {
	appConfig := config.GetDefaultConfig()
	appConfig.Port = "0"
	appConfig.RateLimitEnabled = false
	appConfig.EnforceHTTPS = false

	container := newTestContainer(appConfig)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- StartServerWithConfig(ctx, container, telemetry.NewAppMetrics(prometheus.NewRegistry()),
			config.NewNopLokiLogger(config.ServiceName), appConfig)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
