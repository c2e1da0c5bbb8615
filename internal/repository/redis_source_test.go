package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-assistant/internal/domain"
)

type fakeRedis struct {
	store  map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	default:
		return redis.NewStatusResult("", errors.New("unsupported value"))
	}
	return redis.NewStatusResult("OK", nil)
}

func TestRedisSource_SnapshotRoundTrip(t *testing.T) {
	client := newFakeRedis()
	src := NewRedisSource(client, "")

	require.NoError(t, src.WriteSnapshot(context.Background(), sampleEmployees()))
	assert.Contains(t, client.store, DefaultSnapshotKey)

	employees, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleEmployees(), employees)
}

func TestRedisSource_MissingKeyIsUnavailable(t *testing.T) {
	_, err := NewRedisSource(newFakeRedis(), "other").LoadEmployees(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), `"other"`)
}

func TestRedisSource_ClientFailureIsUnavailable(t *testing.T) {
	client := newFakeRedis()
	client.getErr = errors.New("i/o timeout")

	_, err := NewRedisSource(client, "").LoadEmployees(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestRedisSource_CorruptSnapshotIsMalformed(t *testing.T) {
	client := newFakeRedis()
	client.store[DefaultSnapshotKey] = "{not json"

	_, err := NewRedisSource(client, "").LoadEmployees(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedData)
}
