package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

// BreakerSource guards a remote source with a circuit breaker so a failing
// backend is reported as unavailable without being called again until the
// open period elapses.
type BreakerSource struct {
	next EmployeeSource
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSource wraps next. The breaker opens after maxFailures
// consecutive unavailable loads and stays open for openTimeout.
func NewBreakerSource(name string, next EmployeeSource, maxFailures uint32, openTimeout time.Duration, logger *zap.Logger) *BreakerSource {
	if maxFailures == 0 {
		maxFailures = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Malformed data and abandoned requests say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrMalformedData) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("employee source breaker state changed",
				zap.String("source", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &BreakerSource{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (s *BreakerSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.LoadEmployees(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, unavailable("%s: %w", s.cb.Name(), err)
	}
	if err != nil {
		return nil, err
	}
	employees, _ := result.([]domain.Employee)
	return employees, nil
}

// State reports the breaker state, for readiness checks.
func (s *BreakerSource) State() gobreaker.State {
	return s.cb.State()
}
