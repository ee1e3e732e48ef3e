// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/storage"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
)

var _ RegistryInterface = (*StorageRegistry)(nil)

// lookupTTL bounds how long another replica's writes can go unnoticed.
const lookupTTL = 30 * time.Second

// StorageRegistry keeps tenants in the control plane database, lookups are cached in process.
type StorageRegistry struct {
	storage StorageInterface
	cache   *ristretto.Cache[string, *types.TenantConfig]

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *StorageRegistry) Lookup(ctx context.Context, email string) (*types.TenantConfig, bool, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.StorageRegistry.Lookup")
	defer span.End()

	email = types.NormalizeEmail(email)

	if t, ok := r.cache.Get(email); ok {
		c := *t
		return &c, true, nil
	}

	t, err := r.storage.GetClientByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}

	if err != nil {
		r.logger.Errorf("failed to look up tenant %s: %v", email, err)
		return nil, false, err
	}

	r.cache.SetWithTTL(email, t, cost(t), lookupTTL)

	c := *t
	return &c, true, nil
}

func (r *StorageRegistry) Add(ctx context.Context, cfg *types.TenantConfig) (*types.TenantConfig, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.StorageRegistry.Add")
	defer span.End()

	c, err := prepare(cfg)
	if err != nil {
		return nil, err
	}

	stored, err := r.storage.UpsertClient(ctx, c)
	if errors.Is(err, storage.ErrCheckViolation) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTenant, err)
	}

	if err != nil {
		return nil, err
	}

	r.cache.Del(c.Email)

	return stored, nil
}

func (r *StorageRegistry) ListAll(ctx context.Context) ([]*types.TenantConfig, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.StorageRegistry.ListAll")
	defer span.End()

	tenants, err := r.storage.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	if tenants == nil {
		tenants = make([]*types.TenantConfig, 0)
	}

	return tenants, nil
}

func (r *StorageRegistry) Close() {
	r.cache.Close()
}

func cost(t *types.TenantConfig) int64 {
	return int64(len(t.ID) + len(t.Name) + len(t.Email) + len(t.URL) + len(t.Key) +
		len(t.ResponsibleName) + len(t.Phone) + len(t.PeladaName) + len(t.Status) +
		len(t.SystemPasswordHash) + 64)
}

// NewStorageRegistry builds a registry over s with a lookup cache of at most cacheBytes.
func NewStorageRegistry(s StorageInterface, cacheBytes int64, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*StorageRegistry, error) {
	if cacheBytes <= 0 {
		cacheBytes = 1 << 20
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *types.TenantConfig]{
		NumCounters: cacheBytes / 256 * 10,
		MaxCost:     cacheBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant cache: %v", err)
	}

	r := new(StorageRegistry)

	r.storage = s
	r.cache = cache

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r, nil
}
