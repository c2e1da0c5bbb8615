package repository

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/config"
)

// SourceDependencies carries connections needed by remote sources.
type SourceDependencies struct {
	Postgres PgxPool
	Redis    RedisClient
	Logger   *zap.Logger
}

// NewSource builds the record source selected by DIRECTORY_SOURCE. Remote
// sources are wrapped in a circuit breaker.
func NewSource(cfg config.Config, deps SourceDependencies) (EmployeeSource, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Directory.Source {
	case config.SourceJSON:
		return NewJSONFileSource(cfg.Directory.Path), nil
	case config.SourceCSV:
		return NewCSVFileSource(cfg.Directory.Path), nil
	case config.SourceXLSX:
		return NewXLSXFileSource(cfg.Directory.Path, cfg.Directory.Sheet), nil
	case config.SourceYAML:
		return NewYAMLFileSource(cfg.Directory.Path), nil
	case config.SourcePostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("postgres source selected but no pool provided")
		}
		return NewBreakerSource("postgres", NewPostgresSource(deps.Postgres),
			cfg.Breaker.MaxFailures, cfg.Breaker.OpenTimeout(), logger), nil
	case config.SourceRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis source selected but no client provided")
		}
		return NewBreakerSource("redis", NewRedisSource(deps.Redis, cfg.Redis.SnapshotKey),
			cfg.Breaker.MaxFailures, cfg.Breaker.OpenTimeout(), logger), nil
	default:
		return nil, fmt.Errorf("unsupported directory source %q", cfg.Directory.Source)
	}
}

// NewFileSource picks a file source from the path extension.
func NewFileSource(path string) (EmployeeSource, error) {
	switch ext := fileExt(path); ext {
	case ".json":
		return NewJSONFileSource(path), nil
	case ".csv":
		return NewCSVFileSource(path), nil
	case ".xlsx":
		return NewXLSXFileSource(path, ""), nil
	case ".yaml", ".yml":
		return NewYAMLFileSource(path), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

func fileExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
