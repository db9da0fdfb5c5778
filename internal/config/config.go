package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv               = "development"
	defaultHTTPHost          = "0.0.0.0"
	defaultHTTPPort          = 8090
	defaultBackendURL        = "http://localhost:8080/stockPlus/api"
	defaultBackendTimeoutSec = 10
	defaultRedisDB           = 0
	defaultCacheTTLSeconds   = 30
	defaultChartCacheMaxCost = 1 << 24
	defaultFlushIntervalMS   = 200
	minFlushIntervalMS       = 20
	defaultReconnectSeconds  = 3
	defaultInsightRefreshSec = 60
	defaultPriceFetchLimit   = 8
	defaultTicksExchange     = "stockplus.ticks"
	defaultRabbitPrefetch    = 64
	defaultLogLevel          = "info"
	defaultWatchlistGroup    = 1
	defaultMaxKeywords       = 10
	defaultRollbackOnFailure = true
	defaultArchiveBatchSize  = 500
	defaultArchiveTimeoutMS  = 1000
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env      string
	LogLevel string
	HTTP     HTTPConfig
	Backend  BackendConfig
	Feed     FeedConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Cache    CacheConfig
	RabbitMQ RabbitMQConfig
	UI       UIConfig
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// BackendConfig describes the upstream investment backend.
type BackendConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Username string
	Password string
	Token    string
}

// FeedConfig controls tick buffering and the upstream price stream.
type FeedConfig struct {
	FlushInterval     time.Duration
	ReconnectBackoff  time.Duration
	PriceFetchLimit   int
	RollbackOnFailure bool
}

// PostgresConfig stores database connection parameters. An empty DSN disables the tick archive.
type PostgresConfig struct {
	DSN          string
	BatchSize    int
	BatchTimeout time.Duration
}

// RedisConfig stores Redis connection parameters. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig stores cache behavior.
type CacheConfig struct {
	TTLSeconds   int
	ChartMaxCost int64
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RabbitMQConfig stores the optional AMQP tick source settings.
type RabbitMQConfig struct {
	URL           string
	TicksExchange string
	Prefetch      int
}

// UIConfig stores dashboard behavior shared by views.
type UIConfig struct {
	DefaultGroup      int
	DefaultVenue      string
	DefaultPeriod     string
	MaxKeywords       int
	InsightRefresh    time.Duration
	WatchlistSeedFile string
}

// Load builds Config from environment variables. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
	}

	backendTimeout, err := getInt("BACKEND_TIMEOUT_SECONDS", defaultBackendTimeoutSec)
	if err != nil {
		return nil, fmt.Errorf("parse BACKEND_TIMEOUT_SECONDS: %w", err)
	}

	flushMS, err := getInt("FLUSH_INTERVAL_MS", defaultFlushIntervalMS)
	if err != nil {
		return nil, fmt.Errorf("parse FLUSH_INTERVAL_MS: %w", err)
	}
	if flushMS < minFlushIntervalMS {
		flushMS = minFlushIntervalMS
	}

	reconnect, err := getInt("FEED_RECONNECT_SECONDS", defaultReconnectSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse FEED_RECONNECT_SECONDS: %w", err)
	}

	fetchLimit, err := getInt("PRICE_FETCH_CONCURRENCY", defaultPriceFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("parse PRICE_FETCH_CONCURRENCY: %w", err)
	}

	rollback, err := getBool("FAVORITE_ROLLBACK", defaultRollbackOnFailure)
	if err != nil {
		return nil, fmt.Errorf("parse FAVORITE_ROLLBACK: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	cacheTTL, err := getInt("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}

	prefetch, err := getInt("RABBITMQ_PREFETCH", defaultRabbitPrefetch)
	if err != nil {
		return nil, fmt.Errorf("parse RABBITMQ_PREFETCH: %w", err)
	}

	archiveBatch, err := getInt("ARCHIVE_BATCH_SIZE", defaultArchiveBatchSize)
	if err != nil {
		return nil, fmt.Errorf("parse ARCHIVE_BATCH_SIZE: %w", err)
	}

	archiveTimeout, err := getInt("ARCHIVE_BATCH_TIMEOUT_MS", defaultArchiveTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("parse ARCHIVE_BATCH_TIMEOUT_MS: %w", err)
	}

	group, err := getInt("DEFAULT_GROUP", defaultWatchlistGroup)
	if err != nil {
		return nil, fmt.Errorf("parse DEFAULT_GROUP: %w", err)
	}
	if group < 1 || group > 4 {
		return nil, fmt.Errorf("DEFAULT_GROUP must be within 1..4, got %d", group)
	}

	maxKeywords, err := getInt("MAX_KEYWORDS", defaultMaxKeywords)
	if err != nil {
		return nil, fmt.Errorf("parse MAX_KEYWORDS: %w", err)
	}

	refresh, err := getInt("INSIGHT_REFRESH_SECONDS", defaultInsightRefreshSec)
	if err != nil {
		return nil, fmt.Errorf("parse INSIGHT_REFRESH_SECONDS: %w", err)
	}

	backendURL := strings.TrimRight(getString("BACKEND_URL", defaultBackendURL), "/")
	if backendURL == "" {
		return nil, errors.New("BACKEND_URL is required")
	}

	return &Config{
		Env:      getString("APP_ENV", defaultEnv),
		LogLevel: getString("LOG_LEVEL", defaultLogLevel),
		HTTP:     HTTPConfig{Host: getString("HTTP_HOST", defaultHTTPHost), Port: port},
		Backend: BackendConfig{
			BaseURL:  backendURL,
			Timeout:  time.Duration(backendTimeout) * time.Second,
			Username: os.Getenv("BACKEND_USERNAME"),
			Password: os.Getenv("BACKEND_PASSWORD"),
			Token:    os.Getenv("BACKEND_TOKEN"),
		},
		Feed: FeedConfig{
			FlushInterval:     time.Duration(flushMS) * time.Millisecond,
			ReconnectBackoff:  time.Duration(reconnect) * time.Second,
			PriceFetchLimit:   fetchLimit,
			RollbackOnFailure: rollback,
		},
		Postgres: PostgresConfig{
			DSN:          os.Getenv("DATABASE_DSN"),
			BatchSize:    archiveBatch,
			BatchTimeout: time.Duration(archiveTimeout) * time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			TTLSeconds:   cacheTTL,
			ChartMaxCost: defaultChartCacheMaxCost,
		},
		RabbitMQ: RabbitMQConfig{
			URL:           os.Getenv("RABBITMQ_URL"),
			TicksExchange: getString("RABBITMQ_TICKS_EXCHANGE", defaultTicksExchange),
			Prefetch:      prefetch,
		},
		UI: UIConfig{
			DefaultGroup:      group,
			DefaultVenue:      getString("DEFAULT_VENUE", "J"),
			DefaultPeriod:     getString("DEFAULT_PERIOD", "1D"),
			MaxKeywords:       maxKeywords,
			InsightRefresh:    time.Duration(refresh) * time.Second,
			WatchlistSeedFile: os.Getenv("WATCHLIST_SEED_FILE"),
		},
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("convert %s value %q to bool: %w", key, value, err)
	}
	return parsed, nil
}
