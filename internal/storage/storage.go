// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const clientsTable = "clients"

var clientColumns = []string{
	"id",
	"name",
	"email",
	"url",
	"key",
	"responsible_name",
	"phone",
	"pelada_name",
	"status",
	"system_password_hash",
	"created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func scanClient(row rowScanner) (*types.TenantConfig, error) {
	var c types.TenantConfig
	var status string

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.URL,
		&c.Key,
		&c.ResponsibleName,
		&c.Phone,
		&c.PeladaName,
		&status,
		&c.SystemPasswordHash,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = types.TenantStatus(status)
	return &c, nil
}

// UpsertClient stores c under its email, replacing any previous row for the
// same email together with its id and creation time.
func (s *Storage) UpsertClient(ctx context.Context, c *types.TenantConfig) (*types.TenantConfig, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertClient")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert(clientsTable).
		Columns(clientColumns...).
		Values(
			id.String(),
			c.Name,
			types.NormalizeEmail(c.Email),
			c.URL,
			c.Key,
			c.ResponsibleName,
			c.Phone,
			c.PeladaName,
			string(c.Status),
			c.SystemPasswordHash,
			time.Now().UTC(),
		).
		Suffix(
			"ON CONFLICT (email) DO UPDATE SET " +
				"id = EXCLUDED.id, name = EXCLUDED.name, url = EXCLUDED.url, key = EXCLUDED.key, " +
				"responsible_name = EXCLUDED.responsible_name, phone = EXCLUDED.phone, " +
				"pelada_name = EXCLUDED.pelada_name, status = EXCLUDED.status, " +
				"system_password_hash = EXCLUDED.system_password_hash, created_at = EXCLUDED.created_at " +
				"RETURNING id, name, email, url, key, responsible_name, phone, pelada_name, status, system_password_hash, created_at",
		).
		QueryRowContext(ctx)

	stored, err := scanClient(row)
	if err != nil {
		if IsCheckViolation(err) {
			return nil, fmt.Errorf("invalid client %s: %w", c.Email, ErrCheckViolation)
		}
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	return stored, nil
}

func (s *Storage) GetClientByEmail(ctx context.Context, email string) (*types.TenantConfig, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetClientByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(clientColumns...).
		From(clientsTable).
		Where(sq.Eq{"email": types.NormalizeEmail(email)}).
		QueryRowContext(ctx)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return c, nil
}

func (s *Storage) ListClients(ctx context.Context) ([]*types.TenantConfig, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClients")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(clientColumns...).
		From(clientsTable).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*types.TenantConfig
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, nil
}
