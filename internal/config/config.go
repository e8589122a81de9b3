package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App        AppConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	AMQP       AMQPConfig
	Logger     LoggerConfig
	Pagination PaginationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables the
// listing cache.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

// AMQPConfig holds the RabbitMQ relay settings. An empty URL disables the
// relay.
type AMQPConfig struct {
	URL   string
	Queue string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// PaginationConfig bounds list endpoints.
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// Load reads configuration from environment variables, applying defaults where possible.
// When CONFIG_FILE names a YAML file of KEY: value pairs, its entries act as
// defaults underneath the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	src, err := newSettings(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(src.get("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	port := src.get("PORT", "8000")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	env := src.get("APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Name:                  src.get("APP_NAME", "records-service"),
			Env:                   env,
			Host:                  src.get("APP_HOST", "0.0.0.0"),
			Port:                  port,
			Version:               src.get("APP_VERSION", "dev"),
			RequestTimeoutSeconds: src.getInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            src.get("POSTGRES_DSN", ""),
			MaxConns:       int32(src.getInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(src.getInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  src.getBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(src.getInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(src.getInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            src.get("REDIS_ADDR", ""),
			Password:        src.get("REDIS_PASSWORD", ""),
			DB:              redisDB,
			CacheTTLSeconds: src.getInt("REDIS_CACHE_TTL_SECONDS", 300),
		},
		AMQP: AMQPConfig{
			URL:   src.get("AMQP_URL", ""),
			Queue: src.get("AMQP_QUEUE", "record_events"),
		},
		Logger: LoggerConfig{
			Level:       src.get("LOG_LEVEL", "info"),
			Development: env != "production",
		},
		Pagination: PaginationConfig{
			DefaultLimit: src.getInt("PAGINATION_DEFAULT_LIMIT", 10),
			MaxLimit:     src.getInt("PAGINATION_MAX_LIMIT", 100),
		},
	}

	if cfg.Pagination.DefaultLimit <= 0 {
		cfg.Pagination.DefaultLimit = 10
	}
	if cfg.Pagination.MaxLimit < cfg.Pagination.DefaultLimit {
		cfg.Pagination.MaxLimit = cfg.Pagination.DefaultLimit
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the runtime mode is production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached listing lookups live.
func (r RedisConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// settings resolves a key from the environment first, then the optional file.
type settings struct {
	file map[string]string
}

func newSettings(path string) (settings, error) {
	if path == "" {
		return settings{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return settings{}, fmt.Errorf("config: read file %s: %w", path, err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return settings{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	file := make(map[string]string, len(values))
	for k, v := range values {
		if v != nil {
			file[k] = fmt.Sprint(v)
		}
	}
	return settings{file: file}, nil
}

func (s settings) get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val := s.file[key]; val != "" {
		return val
	}
	return fallback
}

func (s settings) getInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(s.get(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

func (s settings) getBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(s.get(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}
