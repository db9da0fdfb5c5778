package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"HTTP_PORT", "BACKEND_URL", "FLUSH_INTERVAL_MS", "DEFAULT_GROUP", "REDIS_ADDR", "DATABASE_DSN", "RABBITMQ_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8090", cfg.HTTP.Addr())
	require.Equal(t, "http://localhost:8080/stockPlus/api", cfg.Backend.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 200*time.Millisecond, cfg.Feed.FlushInterval)
	require.Equal(t, 3*time.Second, cfg.Feed.ReconnectBackoff)
	require.True(t, cfg.Feed.RollbackOnFailure)
	require.Equal(t, "stockplus.ticks", cfg.RabbitMQ.TicksExchange)
	require.Equal(t, 1, cfg.UI.DefaultGroup)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL())
	require.Empty(t, cfg.Redis.Addr)
	require.Empty(t, cfg.Postgres.DSN)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_URL", "https://api.example.com/stockPlus/api/")
	t.Setenv("FLUSH_INTERVAL_MS", "5")
	t.Setenv("FAVORITE_ROLLBACK", "false")
	t.Setenv("DEFAULT_GROUP", "3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/stockPlus/api", cfg.Backend.BaseURL)
	require.Equal(t, 20*time.Millisecond, cfg.Feed.FlushInterval)
	require.False(t, cfg.Feed.RollbackOnFailure)
	require.Equal(t, 3, cfg.UI.DefaultGroup)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("HTTP_PORT", "eighty")
	_, err := Load()
	require.ErrorContains(t, err, "HTTP_PORT")

	t.Setenv("HTTP_PORT", "")
	t.Setenv("DEFAULT_GROUP", "5")
	_, err = Load()
	require.ErrorContains(t, err, "DEFAULT_GROUP")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MAX_KEYWORDS=4\n"), 0o600))
	t.Setenv("MAX_KEYWORDS", "")
	require.NoError(t, os.Unsetenv("MAX_KEYWORDS"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.UI.MaxKeywords)
}

func TestLoadWatchlistSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
groups:
  - id: 1
    stocks:
      - code: " 005930 "
        name: Samsung Electronics
        favorite: true
      - code: "000660"
        venue: NX
`), 0o600))

	seed, err := LoadWatchlistSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Groups, 1)
	require.Equal(t, "005930", seed.Groups[0].Stocks[0].Code)
	require.Equal(t, "J", seed.Groups[0].Stocks[0].Venue)
	require.Equal(t, "NX", seed.Groups[0].Stocks[1].Venue)

	require.NoError(t, os.WriteFile(path, []byte("groups:\n  - id: 9\n"), 0o600))
	_, err = LoadWatchlistSeed(path)
	require.Error(t, err)

	_, err = LoadWatchlistSeed(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
