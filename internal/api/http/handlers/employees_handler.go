package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/api/dto"
	"github.com/spec-kit/employee-assistant/internal/directory"
	"github.com/spec-kit/employee-assistant/internal/events"
	apperrors "github.com/spec-kit/employee-assistant/pkg/util/errorutil"
)

// EmployeesHandler exposes the cached directory.
type EmployeesHandler struct {
	directory  *directory.Directory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(dir *directory.Directory, dispatcher events.Dispatcher, logger *zap.Logger) *EmployeesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeesHandler{directory: dir, dispatcher: dispatcher, logger: logger}
}

// List handles GET /api/v1/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.directory.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		items = append(items, dto.NewEmployeeResponse(emp))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"total": len(items)},
	})
}

// Get handles GET /api/v1/employees/:name.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return apperrors.NewValidationError("invalid employee name", nil)
	}
	emp, err := h.directory.FindByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(emp)})
}

// Departments handles GET /api/v1/departments.
func (h *EmployeesHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.directory.Departments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departments})
}

// Reload handles POST /api/v1/directory/reload. A failed reload keeps the
// current cache.
func (h *EmployeesHandler) Reload(c *fiber.Ctx) error {
	ctx := c.UserContext()
	err := h.directory.Reload(ctx)

	payload := events.DirectoryReloadedPayload{}
	if err != nil {
		payload.Error = err.Error()
	} else {
		_, payload.Employees, _ = h.directory.Status()
	}
	if h.dispatcher != nil {
		if pubErr := h.dispatcher.Publish(ctx, events.NewEvent(events.EventDirectoryReloaded, payload)); pubErr != nil {
			h.logger.Warn("publish reload event", zap.Error(pubErr))
		}
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.status()})
}

// Status handles GET /api/v1/directory.
func (h *EmployeesHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.status()})
}

func (h *EmployeesHandler) status() dto.DirectoryStatusResponse {
	loaded, count, loadedAt := h.directory.Status()
	resp := dto.DirectoryStatusResponse{Loaded: loaded, Employees: count}
	if loaded {
		at := loadedAt.UTC().Truncate(time.Millisecond)
		resp.LoadedAt = &at
	}
	return resp
}
