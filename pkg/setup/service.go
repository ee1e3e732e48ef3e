// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package setup

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/credentials"
)

const (
	AdminUsername = "admin"
	adminRole     = "admin"
)

//go:embed schema.sql
var Schema string

var _ ServiceInterface = (*Service)(nil)

// Service prepares the backend project of a tenant: it creates the pelada
// tables and optionally the admin user.
type Service struct {
	connections ConnectionsInterface
	hasher      credentials.VerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Bootstrap(ctx context.Context, email, adminPassword string) error {
	ctx, span := s.tracer.Start(ctx, "setup.Service.Bootstrap")
	defer span.End()

	conn, err := s.connections.GetConnection(ctx, email)
	if err != nil {
		return err
	}

	if err := conn.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create tenant schema: %w", err)
	}

	s.logger.Infof("schema created for %s", email)

	if adminPassword == "" {
		return nil
	}

	hash, err := s.hasher.Hash(ctx, adminPassword)
	if err != nil {
		return err
	}

	admin := backend.Row{
		"username": AdminUsername,
		"senha":    hash,
		"role":     adminRole,
	}

	if err := conn.Upsert(ctx, "users", "username", admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Security().UserCreated(email, AdminUsername, adminRole)
	return nil
}

func NewService(connections ConnectionsInterface, hasher credentials.VerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.connections = connections
	s.hasher = hasher

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
