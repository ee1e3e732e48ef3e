// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/session"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

var _ ServiceInterface = (*Service)(nil)

// Service is the session manager, built once at start up. Every call restores
// the controller of the browser session from storage, requests of the same
// session are serialised.
type Service struct {
	sessions    session.BackendInterface
	registry    tenant.RegistryInterface
	connections ConnectionsInterface
	users       credentials.VerifierInterface
	system      credentials.SystemVerifierInterface

	locks *keyedMutex

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) withController(ctx context.Context, sid string, fn func(*Controller) (State, error)) (State, error) {
	if sid == "" {
		return AnonymousState(), ErrMissingSession
	}

	unlock := s.locks.Lock(sid)
	defer unlock()

	store, err := session.NewStore(sid, s.sessions, s.tracer, s.monitor, s.logger)
	if err != nil {
		return AnonymousState(), err
	}

	c := NewController(store, s.registry, s.connections, s.users, s.system, s.tracer, s.monitor, s.logger)
	c.Restore(ctx)

	return fn(c)
}

func (s *Service) SystemLogin(ctx context.Context, sid, email, password string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.SystemLogin")
	defer span.End()

	return s.withController(ctx, sid, func(c *Controller) (State, error) {
		return c.SystemLogin(ctx, email, password)
	})
}

func (s *Service) PeladaLogin(ctx context.Context, sid, username, password string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.PeladaLogin")
	defer span.End()

	return s.withController(ctx, sid, func(c *Controller) (State, error) {
		return c.PeladaLogin(ctx, username, password)
	})
}

func (s *Service) SystemLogout(ctx context.Context, sid string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.SystemLogout")
	defer span.End()

	return s.withController(ctx, sid, func(c *Controller) (State, error) {
		return c.SystemLogout(ctx)
	})
}

func (s *Service) PeladaLogout(ctx context.Context, sid string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.PeladaLogout")
	defer span.End()

	return s.withController(ctx, sid, func(c *Controller) (State, error) {
		return c.PeladaLogout(ctx)
	})
}

func (s *Service) Session(ctx context.Context, sid string) (State, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Session")
	defer span.End()

	return s.withController(ctx, sid, func(c *Controller) (State, error) {
		return c.State(), nil
	})
}

func (s *Service) Connection(ctx context.Context, sid string) (State, backend.ClientInterface, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Connection")
	defer span.End()

	var conn backend.ClientInterface
	state, err := s.withController(ctx, sid, func(c *Controller) (State, error) {
		conn = c.Connection()
		return c.State(), nil
	})
	if err != nil {
		return state, nil, err
	}

	if conn == nil {
		return state, nil, ErrNotSystemAuthenticated
	}

	return state, conn, nil
}

func NewService(
	sessions session.BackendInterface,
	registry tenant.RegistryInterface,
	connections ConnectionsInterface,
	users credentials.VerifierInterface,
	system credentials.SystemVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.sessions = sessions
	s.registry = registry
	s.connections = connections
	s.users = users
	s.system = system
	s.locks = newKeyedMutex()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
