// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const (
	invalidPasswordCode      = "28P01"
	invalidAuthorizationCode = "28000"
	undefinedTableCode       = "42P01"
	invalidCatalogCode       = "3D000"
)

// Client talks to a tenant project straight through its Postgres database.
type Client struct {
	db db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) Select(ctx context.Context, table string, q backend.Query) ([]backend.Row, error) {
	ctx, span := c.tracer.Start(ctx, "postgres.Client.Select")
	defer span.End()

	columns := []string{table}
	for _, f := range q.Filters {
		columns = append(columns, f.Column)
	}
	if err := backend.ValidateIdentifiers(columns...); err != nil {
		return nil, err
	}

	stmt := c.db.Statement(ctx).
		Select("*").
		From(table)

	for _, f := range q.Filters {
		stmt = stmt.Where(sq.Eq{f.Column: f.Value})
	}

	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (c *Client) Insert(ctx context.Context, table string, rows ...backend.Row) error {
	ctx, span := c.tracer.Start(ctx, "postgres.Client.Insert")
	defer span.End()

	return c.write(ctx, table, "", rows)
}

func (c *Client) Upsert(ctx context.Context, table, onConflict string, rows ...backend.Row) error {
	ctx, span := c.tracer.Start(ctx, "postgres.Client.Upsert")
	defer span.End()

	if err := backend.ValidateIdentifiers(onConflict); err != nil {
		return err
	}

	return c.write(ctx, table, onConflict, rows)
}

func (c *Client) write(ctx context.Context, table, onConflict string, rows []backend.Row) error {
	if len(rows) == 0 {
		return nil
	}

	if err := backend.ValidateIdentifiers(table); err != nil {
		return err
	}

	for _, row := range rows {
		if err := backend.ValidateIdentifiers(rowColumns(row)...); err != nil {
			return err
		}
	}

	err := c.db.WithTx(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			stmt := c.db.Statement(txCtx).
				Insert(table).
				SetMap(map[string]interface{}(row))

			if onConflict != "" {
				stmt = stmt.Suffix(conflictClause(onConflict, rowColumns(row)))
			}

			if _, err := stmt.ExecContext(txCtx); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *Client) Exec(ctx context.Context, statement string) error {
	ctx, span := c.tracer.Start(ctx, "postgres.Client.Exec")
	defer span.End()

	if err := c.db.ExecRaw(ctx, statement); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *Client) Close() {
	c.db.Close()
}

func (c *Client) mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidPasswordCode, invalidAuthorizationCode:
			return fmt.Errorf("%w: %s", backend.ErrUnauthorized, pgErr.Message)
		case undefinedTableCode:
			return fmt.Errorf("%w: %s", backend.ErrNotFound, pgErr.Message)
		case invalidCatalogCode:
			return fmt.Errorf("%w: %s", backend.ErrUnreachable, pgErr.Message)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		c.logger.Debugf("tenant database unreachable: %v", err)
		return fmt.Errorf("%w: %v", backend.ErrUnreachable, err)
	}

	return err
}

func rowColumns(row backend.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func conflictClause(onConflict string, columns []string) string {
	updates := make([]string, 0, len(columns))
	for _, col := range columns {
		if col == onConflict {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	if len(updates) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", onConflict)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", onConflict, strings.Join(updates, ", "))
}

func scanRows(rows *sql.Rows) ([]backend.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]backend.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(backend.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// NewClient wraps an open database client.
func NewClient(dbClient db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	c := new(Client)

	c.db = dbClient

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// Dial opens a lazy pool towards the tenant database, the key is used as the role password.
func Dial(cfg db.Config, key string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	cfg.Password = key
	cfg.Lazy = true

	dbClient, err := db.NewDBClient(cfg, tracer, monitor, logger)
	if err != nil {
		return nil, err
	}

	return NewClient(dbClient, tracer, monitor, logger), nil
}
