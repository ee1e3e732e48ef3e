// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

func newMockClient(t *testing.T) (*DBClient, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewDBClientFromDB(
		sqlDB,
		tracing.NewTracer(tracing.NewNoopConfig()),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	), mock
}

func TestDBClient_ExecRaw(t *testing.T) {
	d, mock := newMockClient(t)

	statement := "CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY)"
	mock.ExpectExec(regexp.QuoteMeta(statement)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := d.ExecRaw(context.Background(), statement); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDBClient_WithTx(t *testing.T) {
	tests := []struct {
		name      string
		fnErr     error
		touchDB   bool
		expectErr bool
	}{
		{name: "commit when the function succeeds", touchDB: true},
		{name: "rollback when the function fails", touchDB: true, fnErr: errors.New("boom"), expectErr: true},
		{name: "no transaction without database access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, mock := newMockClient(t)

			if tt.touchDB {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions")).WillReturnResult(sqlmock.NewResult(0, 1))
				if tt.fnErr != nil {
					mock.ExpectRollback()
				} else {
					mock.ExpectCommit()
				}
			}

			err := d.WithTx(context.Background(), func(ctx context.Context) error {
				if tt.touchDB {
					if err := d.ExecRaw(ctx, "DELETE FROM sessions"); err != nil {
						return err
					}
				}
				return tt.fnErr
			})

			if tt.expectErr != (err != nil) {
				t.Errorf("expected error %v, got %v", tt.expectErr, err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}
