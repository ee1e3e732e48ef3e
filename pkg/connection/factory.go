// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

var _ FactoryInterface = (*Factory)(nil)

// checkTable is read by ValidateConnection, every bootstrapped tenant has it.
const checkTable = "users"

// entry is a cached handle with the url and key it was dialled with.
type entry struct {
	client backend.ClientInterface
	url    string
	key    string
}

func (e entry) serves(cfg *types.TenantConfig) bool {
	return e.url == cfg.URL && e.key == cfg.Key
}

// Factory hands out one cached backend handle per tenant.
type Factory struct {
	registry tenant.RegistryInterface
	dialer   DialerInterface

	mu      sync.Mutex
	handles map[string]entry
	group   singleflight.Group

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// GetConnection returns the handle of the tenant registered under email.
// The tenant status is checked on every call, cached handle or not.
func (f *Factory) GetConnection(ctx context.Context, email string) (backend.ClientInterface, error) {
	ctx, span := f.tracer.Start(ctx, "connection.Factory.GetConnection")
	defer span.End()

	email = types.NormalizeEmail(email)

	cfg, found, err := f.registry.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, tenant.ErrTenantNotFound
	}

	if !cfg.IsActive() {
		return nil, tenant.ErrTenantInactive
	}

	if h, ok := f.cached(email, cfg); ok {
		return h, nil
	}

	// one flight per tenant configuration, a re-registered tenant never joins
	// a dial towards its previous backend
	flight := email + "\n" + cfg.URL + "\n" + cfg.Key

	v, err, _ := f.group.Do(flight, func() (interface{}, error) {
		if h, ok := f.cached(email, cfg); ok {
			return h, nil
		}

		h, err := f.dialer.Dial(context.WithoutCancel(ctx), cfg.URL, cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the backend of %s: %w", email, err)
		}

		f.store(email, entry{client: h, url: cfg.URL, key: cfg.Key})

		f.logger.Debugf("opened backend handle for %s", email)
		return h, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(backend.ClientInterface), nil
}

// cached returns the handle of email only when it was dialled with cfg.
func (f *Factory) cached(email string, cfg *types.TenantConfig) (backend.ClientInterface, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.handles[email]
	if !ok || !e.serves(cfg) {
		return nil, false
	}

	return e.client, true
}

// store caches e, closing the handle it replaces. A handle can outlive a
// ClearCache when its dial was already running, it is replaced here as soon
// as a caller sees the registry disagree with it.
func (f *Factory) store(email string, e entry) {
	f.mu.Lock()
	old, ok := f.handles[email]
	f.handles[email] = e
	f.mu.Unlock()

	if ok && old.client != e.client {
		f.logger.Debugf("replacing stale backend handle of %s", email)
		old.client.Close()
	}
}

// ClearCache drops and closes the handles of the listed tenants, or all of them when none is given.
func (f *Factory) ClearCache(emails ...string) {
	f.mu.Lock()

	evicted := make([]backend.ClientInterface, 0)
	if len(emails) == 0 {
		for _, e := range f.handles {
			evicted = append(evicted, e.client)
		}
		f.handles = make(map[string]entry)
	} else {
		for _, email := range emails {
			email = types.NormalizeEmail(email)
			if e, ok := f.handles[email]; ok {
				evicted = append(evicted, e.client)
				delete(f.handles, email)
			}
		}
	}

	f.mu.Unlock()

	for _, h := range evicted {
		h.Close()
	}
}

// ValidateConnection reads one row through a throwaway handle.
// Only a credential rejection, or a url no driver can dial, is reported invalid:
// a missing table, an empty result and even an unreachable backend all count as
// valid, so a true result is no proof the backend works.
func (f *Factory) ValidateConnection(ctx context.Context, url, key string) bool {
	ctx, span := f.tracer.Start(ctx, "connection.Factory.ValidateConnection")
	defer span.End()

	h, err := f.dialer.Dial(ctx, url, key)
	if err != nil {
		f.logger.Debugf("connection validation failed to dial: %v", err)
		return false
	}
	defer h.Close()

	_, err = h.Select(ctx, checkTable, backend.Query{Limit: 1})
	if errors.Is(err, backend.ErrUnauthorized) {
		return false
	}

	if err != nil {
		f.logger.Debugf("connection validation ignored error: %v", err)
	}

	return true
}

// Size is the number of cached handles.
func (f *Factory) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.handles)
}

func NewFactory(registry tenant.RegistryInterface, dialer DialerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Factory {
	f := new(Factory)

	f.registry = registry
	f.dialer = dialer
	f.handles = make(map[string]entry)

	f.tracer = tracer
	f.monitor = monitor
	f.logger = logger

	return f
}
