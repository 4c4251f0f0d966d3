package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var managedVars = []string{
	"STORAGE_TYPE", "POSTGRES_DSN", "POSTGRES_MAX_CONNS", "POSTGRES_CONNECT_TIMEOUT",
	"REDIS_ADDR", "CACHE_TTL", "KAFKA_BROKERS", "KAFKA_TOPIC",
	"CHANGEFEED_GROUP", "CHANGEFEED_WORKERS",
	"HTTP_ADDR", "SERVICE_NAME", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, StorageMemory, cfg.StorageType)
	require.Equal(t, int32(8), cfg.Postgres.MaxConns)
	require.Equal(t, 5*time.Second, cfg.Postgres.ConnectTimeout)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Empty(t, cfg.RedisAddr)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, "storefront.changes", cfg.KafkaTopic)
	require.Equal(t, ":8081", cfg.HTTPAddr)
	require.Equal(t, "storefront-api", cfg.ServiceName)
	require.Equal(t, "storefront-changefeed", cfg.ChangefeedGroup)
	require.Equal(t, 4, cfg.ChangefeedWorkers)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_TYPE", " Database ")
	t.Setenv("POSTGRES_MAX_CONNS", "16")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, StorageDatabase, cfg.StorageType)
	require.Equal(t, int32(16), cfg.Postgres.MaxConns)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadDotenvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR=:9090\nSERVICE_NAME=from-file\n"), 0o600))
	t.Setenv("SERVICE_NAME", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "from-env", cfg.ServiceName)
}

func TestLoadInvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_MAX_CONNS", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "parse env:")
}
