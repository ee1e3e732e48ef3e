// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
)

var _ RegistryInterface = (*MemoryRegistry)(nil)

// MemoryRegistry holds tenants in process, keyed by normalised email.
type MemoryRegistry struct {
	mu      sync.RWMutex
	tenants map[string]*types.TenantConfig

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *MemoryRegistry) Lookup(ctx context.Context, email string) (*types.TenantConfig, bool, error) {
	_, span := r.tracer.Start(ctx, "tenant.MemoryRegistry.Lookup")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenants[types.NormalizeEmail(email)]
	if !ok {
		return nil, false, nil
	}

	c := *t
	return &c, true, nil
}

// Add stores cfg, replacing any tenant registered under the same email.
func (r *MemoryRegistry) Add(ctx context.Context, cfg *types.TenantConfig) (*types.TenantConfig, error) {
	_, span := r.tracer.Start(ctx, "tenant.MemoryRegistry.Add")
	defer span.End()

	c, err := prepare(cfg)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	c.ID = id.String()
	c.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	if _, ok := r.tenants[c.Email]; ok {
		r.logger.Infof("replacing tenant %s", c.Email)
	}
	r.tenants[c.Email] = c
	r.mu.Unlock()

	stored := *c
	return &stored, nil
}

func (r *MemoryRegistry) ListAll(ctx context.Context) ([]*types.TenantConfig, error) {
	_, span := r.tracer.Start(ctx, "tenant.MemoryRegistry.ListAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	tenants := make([]*types.TenantConfig, 0, len(r.tenants))
	for _, t := range r.tenants {
		c := *t
		tenants = append(tenants, &c)
	}

	return tenants, nil
}

func NewMemoryRegistry(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *MemoryRegistry {
	r := new(MemoryRegistry)

	r.tenants = make(map[string]*types.TenantConfig)

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
