package config_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(
		config.WithBaseURL("http://library.local/api"),
		config.WithSessionFile("/tmp/view/session.json"),
		config.WithLogLevel(zapcore.DebugLevel),
	)
	require.NoError(t, err)
	require.Equal(t, "http://library.local/api", cfg.API.BaseURL)
	require.Equal(t, "/tmp/view/session.json", cfg.SessionFile)
	require.Equal(t, 5*time.Second, cfg.ProfileCacheTTL)
	require.Equal(t, 300*time.Millisecond, cfg.GreetingDebounce)
	require.Equal(t, 10, cfg.ItemsPerPage)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.False(t, cfg.Kafka.Enabled())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:8891/api")
	t.Setenv("PROFILE_CACHE_TTL", "1m")
	t.Setenv("KAFKA_ADDRS", "kafka:9092,kafka2:9092")

	cfg, err := config.Load(config.WithBaseURL(""))
	require.NoError(t, err)
	require.Equal(t, "http://backend:8891/api", cfg.API.BaseURL)
	require.Equal(t, time.Minute, cfg.ProfileCacheTTL)
	require.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.Kafka.Addrs)
	require.True(t, cfg.Kafka.Enabled())
	require.NotEmpty(t, cfg.SessionFile)
}

func TestLoad_InvalidItemsPerPage(t *testing.T) {
	t.Setenv("ITEMS_PER_PAGE", "0")
	_, err := config.Load()
	require.Error(t, err)
}
