// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBackendFromClient(
		client,
		ttl,
		tracing.NewTracer(tracing.NewNoopConfig()),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	), mr
}

func TestRedisBackend_SetGet(t *testing.T) {
	ctx := context.Background()
	backend, mr := setupTestRedis(t, time.Hour)

	require.NoError(t, backend.Set(ctx, "sid-1:peladm_system_auth", "true"))

	assert.True(t, mr.Exists("peladm:session:sid-1:peladm_system_auth"))

	v, found, err := backend.Get(ctx, "sid-1:peladm_system_auth")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", v)

	_, found, err = backend.Get(ctx, "sid-1:peladm_current_client")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisBackend_SlidingTTL(t *testing.T) {
	ctx := context.Background()
	backend, mr := setupTestRedis(t, time.Hour)

	require.NoError(t, backend.Set(ctx, "sid-1:k", "v"))

	mr.FastForward(50 * time.Minute)
	_, found, err := backend.Get(ctx, "sid-1:k")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, time.Hour, mr.TTL("peladm:session:sid-1:k"))

	mr.FastForward(2 * time.Hour)
	_, found, err = backend.Get(ctx, "sid-1:k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisBackend_Delete(t *testing.T) {
	ctx := context.Background()
	backend, mr := setupTestRedis(t, 0)

	require.NoError(t, backend.Set(ctx, "sid-1:a", "1"))
	require.NoError(t, backend.Set(ctx, "sid-1:b", "2"))

	require.NoError(t, backend.Delete(ctx, "sid-1:a", "sid-1:missing"))
	require.NoError(t, backend.Delete(ctx))

	assert.False(t, mr.Exists("peladm:session:sid-1:a"))
	assert.True(t, mr.Exists("peladm:session:sid-1:b"))
}

func TestRedisBackend_Unavailable(t *testing.T) {
	ctx := context.Background()
	backend, mr := setupTestRedis(t, time.Hour)
	require.NoError(t, backend.Ping(ctx))
	mr.Close()

	assert.Error(t, backend.Ping(ctx))

	_, _, err := backend.Get(ctx, "sid-1:a")
	assert.Error(t, err)

	assert.Error(t, backend.Set(ctx, "sid-1:a", "1"))
}

func TestNewRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	backend, err := NewRedisBackend(context.Background(), "redis://"+mr.Addr(), time.Hour, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewRedisBackend(context.Background(), "http://localhost:6379", time.Hour, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	assert.Error(t, err)
}
