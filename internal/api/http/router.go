package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-assistant/internal/api/http/handlers"
	"github.com/spec-kit/employee-assistant/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Query     *handlers.QueryHandler
	Employees *handlers.EmployeesHandler
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Handler())

	api := app.Group("/api/v1")
	api.Post("/query", cfg.Query.Ask)

	api.Get("/employees", cfg.Employees.List)
	api.Get("/employees/:name", cfg.Employees.Get)
	api.Get("/departments", cfg.Employees.Departments)

	api.Get("/directory", cfg.Employees.Status)
	api.Post("/directory/reload", cfg.Employees.Reload)
}
