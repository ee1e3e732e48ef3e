// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
)

func newTestStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	return NewStorage(db.NewDBClientFromDB(sqlDB, tracer, monitor, logger), tracer, monitor, logger), mock
}

func clientRows(clients ...*types.TenantConfig) *sqlmock.Rows {
	rows := sqlmock.NewRows(clientColumns)
	for _, c := range clients {
		rows.AddRow(c.ID, c.Name, c.Email, c.URL, c.Key, c.ResponsibleName, c.Phone, c.PeladaName, string(c.Status), c.SystemPasswordHash, c.CreatedAt)
	}
	return rows
}

func TestStorage_UpsertClient(t *testing.T) {
	now := time.Now().UTC()
	stored := &types.TenantConfig{
		ID:        "0190a0e0-0000-7000-8000-000000000001",
		Name:      "Pelada do Zé",
		Email:     "ze@pelada.com",
		URL:       "https://ze.supabase.co",
		Key:       "anon-key",
		Status:    types.TenantActive,
		CreatedAt: now,
	}

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		expectErr   bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO clients .* ON CONFLICT \\(email\\) DO UPDATE SET").
					WithArgs(sqlmock.AnyArg(), "Pelada do Zé", "ze@pelada.com", "https://ze.supabase.co", "anon-key", "", "", "", "active", "", sqlmock.AnyArg()).
					WillReturnRows(clientRows(stored))
			},
		},
		{
			name: "check violation",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO clients").WillReturnError(&pgconn.PgError{Code: pgErrCodeCheckViolation})
			},
			expectedErr: ErrCheckViolation,
			expectErr:   true,
		},
		{
			name: "not null violation",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO clients").WillReturnError(&pgconn.PgError{Code: pgErrCodeNotNullViolation})
			},
			expectedErr: ErrCheckViolation,
			expectErr:   true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO clients").WillReturnError(errors.New("connection reset"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestStorage(t)
			tt.setupMock(mock)

			c, err := s.UpsertClient(context.Background(), &types.TenantConfig{
				Name:   "Pelada do Zé",
				Email:  "ZE@Pelada.com",
				URL:    "https://ze.supabase.co",
				Key:    "anon-key",
				Status: types.TenantActive,
			})

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.ID != stored.ID || c.Email != stored.Email || c.Status != types.TenantActive {
				t.Errorf("unexpected client %+v", c)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestStorage_GetClientByEmail(t *testing.T) {
	stored := &types.TenantConfig{
		ID:        "id-1",
		Name:      "Tenant",
		Email:     "t@x.com",
		URL:       "https://t.supabase.co",
		Status:    types.TenantInactive,
		CreatedAt: time.Now().UTC(),
	}

	t.Run("found", func(t *testing.T) {
		s, mock := newTestStorage(t)
		mock.ExpectQuery("SELECT .* FROM clients WHERE email = \\$1").
			WithArgs("t@x.com").
			WillReturnRows(clientRows(stored))

		c, err := s.GetClientByEmail(context.Background(), "T@X.COM")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != types.TenantInactive {
			t.Errorf("expected inactive status, got %s", c.Status)
		}
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStorage(t)
		mock.ExpectQuery("SELECT .* FROM clients WHERE email = \\$1").
			WithArgs("missing@x.com").
			WillReturnRows(sqlmock.NewRows(clientColumns))

		_, err := s.GetClientByEmail(context.Background(), "missing@x.com")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStorage_ListClients(t *testing.T) {
	s, mock := newTestStorage(t)

	a := &types.TenantConfig{ID: "a", Email: "a@x.com", Status: types.TenantActive, CreatedAt: time.Now().UTC()}
	b := &types.TenantConfig{ID: "b", Email: "b@x.com", Status: types.TenantSuspended, CreatedAt: time.Now().UTC()}
	mock.ExpectQuery("SELECT .* FROM clients").WillReturnRows(clientRows(a, b))

	clients, err := s.ListClients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[1].Status != types.TenantSuspended {
		t.Errorf("expected suspended status, got %s", clients[1].Status)
	}
}
