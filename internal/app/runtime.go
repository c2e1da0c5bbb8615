// Package app assembles the employee assistant from configuration. Both
// the HTTP server and the CLI start from here.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/config"
	"github.com/spec-kit/employee-assistant/internal/directory"
	"github.com/spec-kit/employee-assistant/internal/events"
	"github.com/spec-kit/employee-assistant/internal/observability"
	"github.com/spec-kit/employee-assistant/internal/persistence"
	"github.com/spec-kit/employee-assistant/internal/repository"
	"github.com/spec-kit/employee-assistant/internal/service"
	"github.com/spec-kit/employee-assistant/internal/worker"
)

// Runtime holds the wired components.
type Runtime struct {
	Config     config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Postgres   *persistence.Postgres
	Redis      *persistence.Redis
	Source     repository.EmployeeSource
	Directory  *directory.Directory
	Assistant  *service.Assistant
}

// New connects the backends the configured source needs and builds the
// directory, classifier and assistant on top of them.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Runtime, error) {
	rt := &Runtime{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		Dispatcher: events.NewInMemoryDispatcher(),
	}

	deps := repository.SourceDependencies{Logger: logger}
	if cfg.UsesPostgres() {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.Postgres = pg
		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx, logger); err != nil {
				rt.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		deps.Postgres = pg.Pool
	}
	if cfg.UsesRedis() {
		rt.Redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		deps.Redis = rt.Redis.Client
	}

	source, err := repository.NewSource(cfg, deps)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Source = source
	rt.Directory = directory.New(source, logger.Named("directory"), directory.WithObserver(rt.Metrics))

	classifier := service.NewClassifier(rt.Directory, logger.Named("classifier"))
	rt.Assistant = service.NewAssistant(rt.Directory, classifier, service.AssistantDeps{
		Logger:     logger.Named("assistant"),
		Metrics:    rt.Metrics,
		Dispatcher: rt.Dispatcher,
	})

	worker.StartAuditWorker(service.NewAuditService(rt.Dispatcher, logger))
	return rt, nil
}

// Preload fills the directory cache. Failures are logged, not fatal: the
// next query retries the load.
func (rt *Runtime) Preload(ctx context.Context) {
	if _, err := rt.Directory.ListAll(ctx); err != nil {
		rt.Logger.Warn("directory preload failed", zap.Error(err))
	}
}

// Close releases backend connections.
func (rt *Runtime) Close() {
	if rt.Redis != nil {
		rt.Redis.Close()
	}
	if rt.Postgres != nil {
		rt.Postgres.Close()
	}
}
