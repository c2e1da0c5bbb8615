package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-assistant/internal/api/http"
	"github.com/spec-kit/employee-assistant/internal/api/http/handlers"
	"github.com/spec-kit/employee-assistant/internal/app"
	"github.com/spec-kit/employee-assistant/internal/config"
	"github.com/spec-kit/employee-assistant/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.New(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to build runtime", zap.Error(err))
	}
	defer rt.Close()

	if cfg.Directory.Preload {
		rt.Preload(ctx)
	}

	dependencies := map[string]handlers.Pinger{}
	if rt.Postgres.Configured() {
		dependencies["postgres"] = rt.Postgres
	}
	if rt.Redis != nil {
		dependencies["redis"] = rt.Redis
	}

	server := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(server, logger, rt.Metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout(),
		RateLimitRPS:   cfg.App.RateLimitRPS,
		RateLimitBurst: cfg.App.RateLimitBurst,
	})
	httptransport.RegisterRoutes(server, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, rt.Directory, dependencies),
		Query:     handlers.NewQueryHandler(rt.Assistant),
		Employees: handlers.NewEmployeesHandler(rt.Directory, rt.Dispatcher, logger),
		Metrics:   rt.Metrics,
	})

	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("source", cfg.Directory.Source))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
