// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

// txTimeout bounds a transaction opened on behalf of a request, it is not
// tied to the request context so a client hanging up does not roll it back.
const txTimeout = time.Minute

type txKey struct{}

type Config struct {
	DSN string
	// Password overrides the one in the DSN, tenant backends keep it apart from the URL
	Password        string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
	// Lazy skips the connectivity check, connections are opened on first use
	Lazy bool
}

// pendingTx is opened on the first statement run inside WithTx.
type pendingTx struct {
	db     *sql.DB
	tx     *sql.Tx
	cancel context.CancelFunc
	done   bool
}

func (p *pendingTx) open() (*sql.Tx, error) {
	if p.tx != nil {
		return p.tx, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		return nil, err
	}

	p.tx = tx
	p.cancel = cancel

	return tx, nil
}

func (p *pendingTx) finish(commit bool) error {
	if p.cancel != nil {
		defer p.cancel()
	}

	if p.tx == nil || p.done {
		return nil
	}
	p.done = true

	if commit {
		return p.tx.Commit()
	}

	if err := p.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

type DBClient struct {
	// pool is only set when the client owns it
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// runner is the transaction pending on ctx, or the plain handle outside WithTx.
func (d *DBClient) runner(ctx context.Context) sq.BaseRunner {
	p, ok := ctx.Value(txKey{}).(*pendingTx)
	if !ok {
		return d.db
	}

	tx, err := p.open()
	if err != nil {
		d.logger.Errorf("failed to open transaction, running without one: %v", err)
		return d.db
	}

	return tx
}

// Statement returns a dollar-placeholder builder bound to the transaction on
// ctx, if any.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(d.runner(ctx))
}

// WithTx runs fn with a context whose statements share one transaction. The
// transaction only exists if fn touches the database; it is committed when fn
// succeeds and rolled back otherwise.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	p := &pendingTx{db: d.db}

	if err := fn(context.WithValue(ctx, txKey{}, p)); err != nil {
		if rbErr := p.finish(false); rbErr != nil {
			d.logger.Errorf("failed to roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := p.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ExecRaw runs statement verbatim, inside the transaction on ctx if any.
func (d *DBClient) ExecRaw(ctx context.Context, statement string) error {
	execer, ok := d.runner(ctx).(sq.ExecerContext)
	if !ok {
		return fmt.Errorf("runner cannot execute statements")
	}

	_, err := execer.ExecContext(ctx, statement)
	return err
}

func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	return d.db.PingContext(ctx)
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if cfg.Password != "" {
		config.ConnConfig.Password = cfg.Password
	}

	if cfg.TracingEnabled {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	config.MinConns = cfg.MinConns

	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
		config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	}

	if cfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	return config, nil
}

// NewDBClient opens a pgx pool and exposes it through database/sql.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to record pool stats: %w", err)
		}
	}

	d := NewDBClientFromDB(stdlib.OpenDBFromPool(pool), tracer, monitor, logger)
	d.pool = pool

	if !cfg.Lazy {
		if err := d.Ping(context.Background()); err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}
	}

	return d, nil
}

// NewDBClientFromDB wraps an already opened database handle.
func NewDBClientFromDB(db *sql.DB, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *DBClient {
	d := new(DBClient)

	d.db = db

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d
}
