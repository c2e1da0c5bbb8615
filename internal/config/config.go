package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Directory source kinds.
const (
	SourceJSON     = "json"
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Directory DirectoryConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Breaker   BreakerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	RateLimitRPS          float64
	RateLimitBurst        int
}

// DirectoryConfig selects the employee record source.
type DirectoryConfig struct {
	Source  string
	Path    string
	Sheet   string
	Preload bool
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SnapshotKey string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
}

// BreakerConfig tunes the circuit breaker around remote sources.
type BreakerConfig struct {
	MaxFailures    uint32
	OpenTimeoutSec int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("HTTP_RATE_LIMIT_RPS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_RATE_LIMIT_RPS: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "employee-assistant"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			RateLimitRPS:          rps,
			RateLimitBurst:        getEnvAsInt("HTTP_RATE_LIMIT_BURST", 100),
		},
		Directory: DirectoryConfig{
			Source:  strings.ToLower(getEnv("DIRECTORY_SOURCE", SourceJSON)),
			Path:    getEnv("DIRECTORY_PATH", "Employee_List.json"),
			Sheet:   os.Getenv("DIRECTORY_SHEET"),
			Preload: getEnvAsBool("DIRECTORY_PRELOAD", true),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          redisDB,
			SnapshotKey: getEnv("REDIS_SNAPSHOT_KEY", "employee-assistant:employees"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Breaker: BreakerConfig{
			MaxFailures:    uint32(getEnvAsInt("BREAKER_MAX_FAILURES", 3)),
			OpenTimeoutSec: getEnvAsInt("BREAKER_OPEN_SECONDS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects source settings that cannot work.
func (c *Config) Validate() error {
	switch c.Directory.Source {
	case SourceJSON, SourceCSV, SourceXLSX, SourceYAML:
		if strings.TrimSpace(c.Directory.Path) == "" {
			return fmt.Errorf("DIRECTORY_PATH is required for %s source", c.Directory.Source)
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for postgres source")
		}
	case SourceRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis source")
		}
	default:
		return fmt.Errorf("unsupported DIRECTORY_SOURCE %q", c.Directory.Source)
	}
	if c.App.RateLimitRPS < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// UsesRedis reports whether the directory reads from Redis.
func (c *Config) UsesRedis() bool {
	return c.Directory.Source == SourceRedis
}

// UsesPostgres reports whether the directory reads from Postgres.
func (c *Config) UsesPostgres() bool {
	return c.Directory.Source == SourcePostgres
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// OpenTimeout returns how long an open breaker rejects calls.
func (b BreakerConfig) OpenTimeout() time.Duration {
	if b.OpenTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.OpenTimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
