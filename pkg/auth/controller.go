// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/session"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

const (
	usersTable       = "users"
	usernameColumn   = "username"
	roleColumn       = "role"
	credentialColumn = "senha"

	authenticatedFlag = "true"

	tierSystem = "system"
	tierPelada = "pelada"
)

// Controller is the two tier authentication state machine of one browser session.
// Storage is always written before memory, a failed write leaves both untouched.
type Controller struct {
	mu sync.Mutex

	store       session.StoreInterface
	registry    tenant.RegistryInterface
	connections ConnectionsInterface
	users       credentials.VerifierInterface
	system      credentials.SystemVerifierInterface

	state State
	conn  backend.ClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type write struct {
	key    session.Key
	value  string
	delete bool
}

type previous struct {
	key   session.Key
	value string
	found bool
}

func set(key session.Key, value string) write {
	return write{key: key, value: value}
}

func del(key session.Key) write {
	return write{key: key, delete: true}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Connection is nil unless the session is at least system authenticated.
func (c *Controller) Connection() backend.ClientInterface {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn
}

func (c *Controller) SystemLogin(ctx context.Context, email, password string) (State, error) {
	ctx, span := c.tracer.Start(ctx, "auth.Controller.SystemLogin")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	email = types.NormalizeEmail(email)

	cfg, found, err := c.registry.Lookup(ctx, email)
	if err != nil {
		return c.state, fmt.Errorf("failed to look up tenant: %w", err)
	}

	if !found {
		c.logger.Security().AuthnFailure(email, tierSystem, "unknown tenant")
		return c.state, tenant.ErrTenantNotFound
	}

	if !cfg.IsActive() {
		c.logger.Security().AuthnFailure(email, tierSystem, "inactive tenant")
		return c.state, tenant.ErrTenantInactive
	}

	if err := c.system.VerifySystem(ctx, cfg, password); err != nil {
		c.logger.Security().AuthnFailure(email, tierSystem, err.Error())
		return c.state, ErrInvalidCredentials
	}

	conn, err := c.connections.GetConnection(ctx, cfg.Email)
	if err != nil {
		return c.state, err
	}

	snapshot, err := json.Marshal(cfg.Snapshot())
	if err != nil {
		return c.state, err
	}

	writes := make([]write, 0, 6)
	if old := c.state.TenantEmail(); old != "" && old != cfg.Email {
		for _, k := range session.TenantKeys(old) {
			writes = append(writes, del(k))
		}
	}
	for _, k := range session.TenantKeys(cfg.Email) {
		writes = append(writes, del(k))
	}
	writes = append(writes,
		set(session.CurrentClientKey(), string(snapshot)),
		set(session.SystemAuthKey(), authenticatedFlag),
	)

	if err := c.apply(ctx, writes); err != nil {
		return c.state, err
	}

	c.conn = conn
	c.state = SystemState(cfg)

	c.logger.Security().AuthnSuccess(cfg.Email, tierSystem)
	return c.state, nil
}

func (c *Controller) PeladaLogin(ctx context.Context, username, password string) (State, error) {
	ctx, span := c.tracer.Start(ctx, "auth.Controller.PeladaLogin")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.IsSystemAuthenticated() || c.conn == nil {
		return c.state, ErrNotSystemAuthenticated
	}

	tenantEmail := c.state.TenantEmail()
	subject := tenantEmail + "/" + username

	rows, err := c.conn.Select(ctx, usersTable, backend.Query{
		Filters: []backend.Filter{backend.Eq(usernameColumn, username)},
		Limit:   2,
	})
	if err != nil {
		return c.state, fmt.Errorf("failed to look up user: %w", err)
	}

	if len(rows) == 0 {
		c.logger.Security().AuthnFailure(subject, tierPelada, "unknown user")
		return c.state, ErrUserNotFound
	}

	if len(rows) > 1 {
		c.logger.Warnf("username %s is not unique in the users table of %s", username, tenantEmail)
		c.logger.Security().AuthnFailure(subject, tierPelada, "ambiguous user")
		return c.state, ErrUserNotFound
	}

	row := rows[0]
	if err := c.users.Verify(ctx, row.String(credentialColumn), password); err != nil {
		c.logger.Security().AuthnFailure(subject, tierPelada, err.Error())
		return c.state, ErrInvalidCredentials
	}

	user := &types.PeladaUser{
		TenantEmail: tenantEmail,
		Username:    row.String(usernameColumn),
		Role:        row.String(roleColumn),
		Record:      make(map[string]any, len(row)),
	}
	for k, v := range row {
		if k == credentialColumn {
			continue
		}
		user.Record[k] = v
	}

	record, err := json.Marshal(user)
	if err != nil {
		return c.state, err
	}

	err = c.apply(ctx, []write{
		set(session.PeladaUserKey(tenantEmail), string(record)),
		set(session.PeladaAuthKey(tenantEmail), authenticatedFlag),
	})
	if err != nil {
		return c.state, err
	}

	c.state = FullState(c.state.tenant, user)

	c.logger.Security().AuthnSuccess(subject, tierPelada)
	return c.state, nil
}

// SystemLogout drops both tiers.
func (c *Controller) SystemLogout(ctx context.Context) (State, error) {
	ctx, span := c.tracer.Start(ctx, "auth.Controller.SystemLogout")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	tenantEmail := c.state.TenantEmail()

	if err := c.apply(ctx, systemWrites(tenantEmail)); err != nil {
		return c.state, err
	}

	c.conn = nil
	c.state = AnonymousState()

	if tenantEmail != "" {
		c.logger.Security().Logout(tenantEmail, tierSystem)
	}
	return c.state, nil
}

// PeladaLogout drops the pelada tier only, it is a no-op without a system session.
func (c *Controller) PeladaLogout(ctx context.Context) (State, error) {
	ctx, span := c.tracer.Start(ctx, "auth.Controller.PeladaLogout")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.IsSystemAuthenticated() {
		return c.state, nil
	}

	tenantEmail := c.state.TenantEmail()
	user := c.state.User()

	if err := c.apply(ctx, peladaWrites(tenantEmail)); err != nil {
		return c.state, err
	}

	c.state = SystemState(c.state.tenant)

	if user != nil {
		c.logger.Security().Logout(tenantEmail+"/"+user.Username, tierPelada)
	}
	return c.state, nil
}

// Restore rebuilds the state from storage. Entries that are corrupt, half
// written, or that point to a tenant that is gone or inactive are cleared.
// It never fails: anything that cannot be restored leaves a lower tier.
func (c *Controller) Restore(ctx context.Context) State {
	ctx, span := c.tracer.Start(ctx, "auth.Controller.Restore")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = AnonymousState()
	c.conn = nil

	cfg, err := c.restoreSystem(ctx)
	if err != nil {
		c.logger.Debugf("system session not restored: %v", err)
		return c.state
	}

	conn, err := c.connections.GetConnection(ctx, cfg.Email)
	if err != nil {
		c.logger.Infof("dropping system session of %s: %v", cfg.Email, err)
		c.clear(ctx, systemWrites(cfg.Email))
		return c.state
	}

	c.conn = conn
	c.state = SystemState(cfg)

	user, err := c.restorePelada(ctx, cfg.Email)
	if err != nil {
		c.logger.Debugf("pelada session not restored: %v", err)
		return c.state
	}

	if user != nil {
		c.state = FullState(cfg, user)
	}

	return c.state
}

var errNoSession = errors.New("no persisted session")

func (c *Controller) restoreSystem(ctx context.Context) (*types.TenantConfig, error) {
	raw, found, err := c.store.Get(ctx, session.CurrentClientKey())
	if err != nil {
		return nil, err
	}

	flag, flagFound, err := c.store.Get(ctx, session.SystemAuthKey())
	if err != nil {
		return nil, err
	}

	if !found && !flagFound {
		return nil, errNoSession
	}

	snapshot := new(types.TenantConfig)
	parseErr := json.Unmarshal([]byte(raw), snapshot)

	if parseErr != nil || types.NormalizeEmail(snapshot.Email) == "" {
		c.clear(ctx, systemWrites(""))
		return nil, fmt.Errorf("%w: tenant snapshot", ErrStorageCorrupt)
	}

	email := types.NormalizeEmail(snapshot.Email)

	if !found || !flagFound || flag != authenticatedFlag {
		c.clear(ctx, systemWrites(email))
		return nil, fmt.Errorf("%w: half written system session", ErrStorageCorrupt)
	}

	cfg, found, err := c.registry.Lookup(ctx, email)
	if err != nil {
		// the registry may come back, keep the session for the next request
		return nil, err
	}

	if !found || !cfg.IsActive() {
		c.clear(ctx, systemWrites(email))
		return nil, fmt.Errorf("tenant %s no longer available", email)
	}

	return cfg, nil
}

func (c *Controller) restorePelada(ctx context.Context, tenantEmail string) (*types.PeladaUser, error) {
	raw, found, err := c.store.Get(ctx, session.PeladaUserKey(tenantEmail))
	if err != nil {
		return nil, err
	}

	flag, flagFound, err := c.store.Get(ctx, session.PeladaAuthKey(tenantEmail))
	if err != nil {
		return nil, err
	}

	if !found && !flagFound {
		return nil, nil
	}

	if !found || !flagFound || flag != authenticatedFlag {
		c.clear(ctx, peladaWrites(tenantEmail))
		return nil, fmt.Errorf("%w: half written pelada session", ErrStorageCorrupt)
	}

	user := new(types.PeladaUser)
	if err := json.Unmarshal([]byte(raw), user); err != nil || user.Username == "" {
		c.clear(ctx, peladaWrites(tenantEmail))
		return nil, fmt.Errorf("%w: pelada user", ErrStorageCorrupt)
	}

	if types.NormalizeEmail(user.TenantEmail) != tenantEmail {
		c.clear(ctx, peladaWrites(tenantEmail))
		return nil, fmt.Errorf("pelada user belongs to %s, not %s", user.TenantEmail, tenantEmail)
	}

	return user, nil
}

func systemWrites(tenantEmail string) []write {
	writes := make([]write, 0, 4)
	if tenantEmail != "" {
		writes = append(writes, peladaWrites(tenantEmail)...)
	}
	return append(writes, del(session.SystemAuthKey()), del(session.CurrentClientKey()))
}

func peladaWrites(tenantEmail string) []write {
	return []write{del(session.PeladaAuthKey(tenantEmail)), del(session.PeladaUserKey(tenantEmail))}
}

// apply performs writes in order, restoring the previous values if one fails.
func (c *Controller) apply(ctx context.Context, writes []write) error {
	prev := make([]previous, 0, len(writes))
	for _, w := range writes {
		v, found, err := c.store.Get(ctx, w.key)
		if err != nil {
			return fmt.Errorf("failed to read session storage: %w", err)
		}
		prev = append(prev, previous{key: w.key, value: v, found: found})
	}

	for i, w := range writes {
		var err error
		if w.delete {
			err = c.store.Delete(ctx, w.key)
		} else {
			err = c.store.Set(ctx, w.key, w.value)
		}

		if err != nil {
			c.rollback(ctx, prev[:i+1])
			return fmt.Errorf("failed to write session storage: %w", err)
		}
	}

	return nil
}

func (c *Controller) rollback(ctx context.Context, prev []previous) {
	for i := len(prev) - 1; i >= 0; i-- {
		p := prev[i]

		var err error
		if p.found {
			err = c.store.Set(ctx, p.key, p.value)
		} else {
			err = c.store.Delete(ctx, p.key)
		}

		if err != nil {
			c.logger.Errorf("failed to roll back session entry %s: %v", p.key, err)
		}
	}
}

// clear is used while restoring, failures are only logged.
func (c *Controller) clear(ctx context.Context, writes []write) {
	if err := c.apply(ctx, writes); err != nil {
		c.logger.Errorf("failed to clear session storage: %v", err)
	}
}

func NewController(
	store session.StoreInterface,
	registry tenant.RegistryInterface,
	connections ConnectionsInterface,
	users credentials.VerifierInterface,
	system credentials.SystemVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Controller {
	c := new(Controller)

	c.store = store
	c.registry = registry
	c.connections = connections
	c.users = users
	c.system = system
	c.state = AnonymousState()

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
