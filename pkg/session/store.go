// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

// Store scopes a backend to one browser session.
type Store struct {
	sid     string
	backend BackendInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Store) rawKey(k Key) string {
	return s.sid + ":" + k.String()
}

func (s *Store) Get(ctx context.Context, k Key) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.Get")
	defer span.End()

	return s.backend.Get(ctx, s.rawKey(k))
}

func (s *Store) Set(ctx context.Context, k Key, value string) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.Set")
	defer span.End()

	return s.backend.Set(ctx, s.rawKey(k), value)
}

func (s *Store) Delete(ctx context.Context, keys ...Key) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.Delete")
	defer span.End()

	if len(keys) == 0 {
		return nil
	}

	raw := make([]string, 0, len(keys))
	for _, k := range keys {
		raw = append(raw, s.rawKey(k))
	}

	return s.backend.Delete(ctx, raw...)
}

func (s *Store) SessionID() string {
	return s.sid
}

// NewStore returns the view of backend belonging to the browser session sid.
func NewStore(sid string, backend BackendInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Store, error) {
	if sid == "" {
		return nil, ErrMissingSessionID
	}

	s := new(Store)

	s.sid = sid
	s.backend = backend

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s, nil
}
