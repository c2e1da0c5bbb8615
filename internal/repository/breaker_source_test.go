package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

type scriptedSource struct {
	calls int
	err   error
}

func (s *scriptedSource) LoadEmployees(context.Context) ([]domain.Employee, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return sampleEmployees(), nil
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	next := &scriptedSource{}
	src := NewBreakerSource("test", next, 2, time.Minute, nil)

	employees, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
	assert.Equal(t, gobreaker.StateClosed, src.State())
}

func TestBreakerSource_OpensAfterConsecutiveOutages(t *testing.T) {
	next := &scriptedSource{err: fmt.Errorf("%w: connection refused", domain.ErrSourceUnavailable)}
	src := NewBreakerSource("test", next, 2, time.Minute, nil)

	for i := 0; i < 2; i++ {
		_, err := src.LoadEmployees(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, src.State())

	_, err := src.LoadEmployees(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, 2, next.calls)
}

func TestBreakerSource_MalformedDataDoesNotTrip(t *testing.T) {
	next := &scriptedSource{err: fmt.Errorf("%w: row 1", domain.ErrMalformedData)}
	src := NewBreakerSource("test", next, 1, time.Minute, nil)

	for i := 0; i < 3; i++ {
		_, err := src.LoadEmployees(context.Background())
		assert.ErrorIs(t, err, domain.ErrMalformedData)
	}
	assert.Equal(t, gobreaker.StateClosed, src.State())
	assert.Equal(t, 3, next.calls)
}

func TestBreakerSource_HalfOpenRecovers(t *testing.T) {
	next := &scriptedSource{err: errors.New("boom")}
	src := NewBreakerSource("test", next, 1, 10*time.Millisecond, nil)

	_, err := src.LoadEmployees(context.Background())
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, src.State())

	time.Sleep(20 * time.Millisecond)
	next.err = nil

	employees, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	assert.Len(t, employees, 2)
	assert.Equal(t, gobreaker.StateClosed, src.State())
}

func TestBreakerSource_CancelledRequestsDoNotTrip(t *testing.T) {
	src := NewBreakerSource("test", NewJSONFileSource("unused.json"), 1, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		_, err := src.LoadEmployees(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, src.State())

	next := &scriptedSource{err: fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, context.DeadlineExceeded)}
	slow := NewBreakerSource("slow", next, 1, time.Minute, nil)
	_, err := slow.LoadEmployees(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, gobreaker.StateClosed, slow.State())
}
