// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package postgres

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

func newTestClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	return NewClient(db.NewDBClientFromDB(sqlDB, tracer, monitor, logger), tracer, monitor, logger), mock
}

func TestClient_Select(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedLen int
		expectedErr error
	}{
		{
			name: "single match",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE username = $1 LIMIT 2")).
					WithArgs("admin").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "senha"}).AddRow(1, []byte("admin"), "hash"))
			},
			expectedLen: 1,
		},
		{
			name: "no rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE username = $1 LIMIT 2")).
					WithArgs("admin").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "senha"}))
			},
		},
		{
			name: "bad password",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users")).
					WillReturnError(&pgconn.PgError{Code: invalidPasswordCode, Message: "password authentication failed"})
			},
			expectedErr: backend.ErrUnauthorized,
		},
		{
			name: "missing table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users")).
					WillReturnError(&pgconn.PgError{Code: undefinedTableCode, Message: "relation \"users\" does not exist"})
			},
			expectedErr: backend.ErrNotFound,
		},
		{
			name: "connection refused",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users")).
					WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
			},
			expectedErr: backend.ErrUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock := newTestClient(t)
			tt.setupMock(mock)

			rows, err := c.Select(context.Background(), "users", backend.Query{
				Filters: []backend.Filter{backend.Eq("username", "admin")},
				Limit:   2,
			})

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(rows) != tt.expectedLen {
				t.Fatalf("expected %d rows, got %d", tt.expectedLen, len(rows))
			}

			if tt.expectedLen > 0 && rows[0].String("username") != "admin" {
				t.Errorf("expected bytes to be converted to string, got %#v", rows[0]["username"])
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestClient_SelectRejectsInvalidIdentifiers(t *testing.T) {
	c, mock := newTestClient(t)

	_, err := c.Select(context.Background(), "users", backend.Query{
		Filters: []backend.Filter{backend.Eq("username = 'x' OR 1=1 --", "admin")},
	})

	if !errors.Is(err, backend.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should have been issued: %v", err)
	}
}

func TestClient_Insert(t *testing.T) {
	c, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO players (name,pelada_id) VALUES ($1,$2)")).
		WithArgs("Zé", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO players (name,pelada_id) VALUES ($1,$2)")).
		WithArgs("Tião", 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := c.Insert(context.Background(), "players",
		backend.Row{"name": "Zé", "pelada_id": 1},
		backend.Row{"name": "Tião", "pelada_id": 1},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClient_Upsert(t *testing.T) {
	c, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (role,senha,username) VALUES ($1,$2,$3) ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role, senha = EXCLUDED.senha")).
		WithArgs("admin", "hash", "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := c.Upsert(context.Background(), "users", "username", backend.Row{"username": "admin", "senha": "hash", "role": "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClient_UpsertRollsBackOnFailure(t *testing.T) {
	c, mock := newTestClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: undefinedTableCode})
	mock.ExpectRollback()

	err := c.Upsert(context.Background(), "users", "username", backend.Row{"username": "admin"})
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClient_Exec(t *testing.T) {
	c, mock := newTestClient(t)

	statement := "CREATE TABLE IF NOT EXISTS peladas (id BIGSERIAL PRIMARY KEY)"
	mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := c.Exec(context.Background(), statement); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestConflictClause(t *testing.T) {
	tests := []struct {
		onConflict string
		columns    []string
		expected   string
	}{
		{
			onConflict: "username",
			columns:    []string{"role", "username"},
			expected:   "ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role",
		},
		{
			onConflict: "username",
			columns:    []string{"username"},
			expected:   "ON CONFLICT (username) DO NOTHING",
		},
	}

	for _, tt := range tests {
		if got := conflictClause(tt.onConflict, tt.columns); got != tt.expected {
			t.Errorf("conflictClause(%q, %v) = %q, expected %q", tt.onConflict, tt.columns, got, tt.expected)
		}
	}
}
