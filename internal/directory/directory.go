// Package directory holds the in-memory employee directory: a read-through
// cache over a record source, populated on first access and replaced only
// as a whole.
package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/domain"
	"github.com/spec-kit/employee-assistant/internal/policy"
	"github.com/spec-kit/employee-assistant/internal/repository"
)

// LoadObserver receives the outcome of every source load.
type LoadObserver interface {
	RecordDirectoryLoad(outcome string, employees int, duration time.Duration)
}

// Option customizes a Directory.
type Option func(*Directory)

// WithObserver reports loads to obs.
func WithObserver(obs LoadObserver) Option {
	return func(d *Directory) {
		d.observer = obs
	}
}

// Directory answers lookups against the cached employee list.
type Directory struct {
	source   repository.EmployeeSource
	logger   *zap.Logger
	observer LoadObserver

	mu        sync.RWMutex
	loaded    bool
	loadedAt  time.Time
	employees []domain.Employee
	byName    map[string]int
}

// New builds a directory over source. Nothing is loaded until first use.
func New(source repository.EmployeeSource, logger *zap.Logger, opts ...Option) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Directory{source: source, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListAll returns every employee in source order.
func (d *Directory) ListAll(ctx context.Context) ([]domain.Employee, error) {
	employees, _, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(employees), nil
}

// FindByName resolves a full name, ignoring case and surrounding whitespace.
func (d *Directory) FindByName(ctx context.Context, name string) (domain.Employee, error) {
	employees, byName, err := d.snapshot(ctx)
	if err != nil {
		return domain.Employee{}, err
	}
	idx, ok := byName[domain.NormalizeName(name)]
	if !ok {
		return domain.Employee{}, fmt.Errorf("directory: %q: %w", name, domain.ErrEmployeeNotFound)
	}
	return employees[idx], nil
}

// Departments returns the distinct departments with their headcounts, in
// order of first appearance.
func (d *Directory) Departments(ctx context.Context) ([]domain.Department, error) {
	employees, _, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var departments []domain.Department
	for _, emp := range employees {
		if i, ok := index[emp.Department]; ok {
			departments[i].Headcount++
			continue
		}
		index[emp.Department] = len(departments)
		departments = append(departments, domain.Department{Name: emp.Department, Headcount: 1})
	}
	return departments, nil
}

// Reload fetches a fresh copy from the source and swaps it in. On failure
// the current cache stays in place.
func (d *Directory) Reload(ctx context.Context) error {
	employees, err := d.load(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.install(employees)
	return nil
}

// Invalidate drops the cache; the next read loads from the source again.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = false
	d.employees = nil
	d.byName = nil
	d.loadedAt = time.Time{}
}

// Status reports whether the cache is populated, its size and load time.
func (d *Directory) Status() (loaded bool, employees int, loadedAt time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded, len(d.employees), d.loadedAt
}

func (d *Directory) snapshot(ctx context.Context) ([]domain.Employee, map[string]int, error) {
	d.mu.RLock()
	if d.loaded {
		employees, byName := d.employees, d.byName
		d.mu.RUnlock()
		return employees, byName, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return d.employees, d.byName, nil
	}
	employees, err := d.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	d.install(employees)
	return d.employees, d.byName, nil
}

// install must be called with mu held for writing.
func (d *Directory) install(employees []domain.Employee) {
	byName := make(map[string]int, len(employees))
	for i, emp := range employees {
		key := emp.NameKey()
		if _, dup := byName[key]; dup {
			d.logger.Warn("duplicate employee name; keeping first record", zap.String("name", emp.Name), zap.Int("row", i+1))
			continue
		}
		byName[key] = i
	}
	d.employees = employees
	d.byName = byName
	d.loaded = true
	d.loadedAt = time.Now()
}

func (d *Directory) load(ctx context.Context) ([]domain.Employee, error) {
	if d.source == nil {
		return nil, fmt.Errorf("directory: %w: no source configured", domain.ErrSourceUnavailable)
	}

	start := time.Now()
	employees, err := d.source.LoadEmployees(ctx)
	if err != nil {
		d.observe("error", 0, time.Since(start))
		d.logger.Error("employee load failed", zap.Error(err))
		return nil, fmt.Errorf("directory: load employees: %w", err)
	}
	d.observe("ok", len(employees), time.Since(start))

	for _, emp := range employees {
		if _, ok := policy.LeaveFor(emp.Band); !ok {
			d.logger.Warn("employee band has no policy entitlements", zap.String("name", emp.Name), zap.String("band", string(emp.Band)))
		}
		if sum := emp.ComponentSum(); sum != emp.TotalCTC {
			d.logger.Warn("total CTC differs from component sum",
				zap.String("name", emp.Name),
				zap.Int64("total_ctc", emp.TotalCTC),
				zap.Int64("component_sum", sum))
		}
	}
	d.logger.Info("employee directory loaded", zap.Int("count", len(employees)))
	return employees, nil
}

func (d *Directory) observe(outcome string, count int, duration time.Duration) {
	if d.observer != nil {
		d.observer.RecordDirectoryLoad(outcome, count, duration)
	}
}
