// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package setup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

//go:generate mockgen -build_flags=--mod=mod -package setup -destination ./mock_setup.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package setup -destination ./mock_backend.go -source=../../internal/backend/interfaces.go

const tenantEmail = "t@x.com"

func newService(connections ConnectionsInterface) *Service {
	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	return NewService(connections, credentials.NewBcryptVerifier(bcrypt.MinCost, tracer, monitor, logger), tracer, monitor, logger)
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, table := range []string{"users", "clients", "peladas", "players", "matches", "match_players", "queue"} {
		if !strings.Contains(Schema, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema does not create %s", table)
		}
	}

	if strings.Count(Schema, "CREATE TABLE ") != strings.Count(Schema, "CREATE TABLE IF NOT EXISTS ") {
		t.Error("every table must be guarded by IF NOT EXISTS")
	}
}

func TestBootstrap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connections := NewMockConnectionsInterface(ctrl)
	conn := NewMockClientInterface(ctrl)

	connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(conn, nil)
	conn.EXPECT().Exec(gomock.Any(), Schema).Return(nil)
	conn.EXPECT().Upsert(gomock.Any(), "users", "username", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, rows ...backend.Row) error {
			if len(rows) != 1 {
				t.Fatalf("expected one row, got %d", len(rows))
			}

			row := rows[0]
			if row.String("username") != AdminUsername || row.String("role") != "admin" {
				t.Errorf("unexpected admin row %v", row)
			}

			if err := bcrypt.CompareHashAndPassword([]byte(row.String("senha")), []byte("s3cret")); err != nil {
				t.Errorf("admin password not hashed: %v", err)
			}
			return nil
		},
	)

	if err := newService(connections).Bootstrap(context.TODO(), tenantEmail, "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBootstrapWithoutAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connections := NewMockConnectionsInterface(ctrl)
	conn := NewMockClientInterface(ctrl)

	connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(conn, nil)
	conn.EXPECT().Exec(gomock.Any(), Schema).Return(nil)
	conn.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	if err := newService(connections).Bootstrap(context.TODO(), tenantEmail, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBootstrapFailures(t *testing.T) {
	tests := []struct {
		name      string
		connErr   error
		execErr   error
		upsertErr error
		expected  error
	}{
		{name: "unknown tenant", connErr: tenant.ErrTenantNotFound, expected: tenant.ErrTenantNotFound},
		{name: "backend unreachable", connErr: backend.ErrUnreachable, expected: backend.ErrUnreachable},
		{name: "schema rejected", execErr: backend.ErrUnauthorized, expected: backend.ErrUnauthorized},
		{name: "admin upsert failed", upsertErr: backend.ErrNotFound, expected: backend.ErrNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			connections := NewMockConnectionsInterface(ctrl)
			conn := NewMockClientInterface(ctrl)

			if test.connErr != nil {
				connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(nil, test.connErr)
			} else {
				connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(conn, nil)
				conn.EXPECT().Exec(gomock.Any(), Schema).Return(test.execErr)
			}

			if test.connErr == nil && test.execErr == nil {
				conn.EXPECT().Upsert(gomock.Any(), "users", "username", gomock.Any()).Return(test.upsertErr)
			}

			err := newService(connections).Bootstrap(context.TODO(), tenantEmail, "s3cret")
			if !errors.Is(err, test.expected) {
				t.Errorf("expected error %v, got %v", test.expected, err)
			}
		})
	}
}
