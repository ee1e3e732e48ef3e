// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const defaultRedisPrefix = "peladm:session"

// RedisBackend persists session state in Redis, every access extends the entry TTL.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *RedisBackend) key(k string) string {
	return r.prefix + ":" + k
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := r.tracer.Start(ctx, "session.RedisBackend.Get")
	defer span.End()

	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		r.setAvailability(0)
		return "", false, fmt.Errorf("failed to read session entry: %w", err)
	}

	if r.ttl > 0 {
		if err := r.client.Expire(ctx, r.key(key), r.ttl).Err(); err != nil {
			r.logger.Warnf("failed to extend session entry ttl: %v", err)
		}
	}

	r.setAvailability(1)
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	ctx, span := r.tracer.Start(ctx, "session.RedisBackend.Set")
	defer span.End()

	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		r.setAvailability(0)
		return fmt.Errorf("failed to write session entry: %w", err)
	}

	r.setAvailability(1)
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	ctx, span := r.tracer.Start(ctx, "session.RedisBackend.Delete")
	defer span.End()

	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, r.key(k))
	}

	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		r.setAvailability(0)
		return fmt.Errorf("failed to delete session entries: %w", err)
	}

	r.setAvailability(1)
	return nil
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "session.RedisBackend.Ping")
	defer span.End()

	if err := r.client.Ping(ctx).Err(); err != nil {
		r.setAvailability(0)
		return err
	}

	r.setAvailability(1)
	return nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) setAvailability(v float64) {
	_ = r.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, v)
}

// NewRedisBackend connects to the server at redisURL and checks it answers.
func NewRedisBackend(ctx context.Context, redisURL string, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*RedisBackend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %v", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return NewRedisBackendFromClient(client, ttl, tracer, monitor, logger), nil
}

func NewRedisBackendFromClient(client *redis.Client, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RedisBackend {
	r := new(RedisBackend)

	r.client = client
	r.prefix = defaultRedisPrefix
	r.ttl = ttl

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
