// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package connection

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/backend/postgres"
	"github.com/canonical/pelada-admin/internal/backend/rest"
	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

type DialerConfig struct {
	// Timeout bounds every request towards a REST backend
	Timeout time.Duration
	// DB is the pool template used for postgres backends, DSN and password come from the tenant
	DB db.Config
}

// Dialer picks the backend driver from the url scheme.
type Dialer struct {
	httpClient *http.Client
	dbConfig   db.Config

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *Dialer) Dial(ctx context.Context, rawURL, key string) (backend.ClientInterface, error) {
	_, span := d.tracer.Start(ctx, "connection.Dialer.Dial")
	defer span.End()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %v", err)
	}

	switch u.Scheme {
	case "http", "https":
		return rest.NewClient(rawURL, key, d.httpClient, d.tracer, d.monitor, d.logger)
	case "postgres", "postgresql":
		cfg := d.dbConfig
		cfg.DSN = rawURL
		return postgres.Dial(cfg, key, d.tracer, d.monitor, d.logger)
	}

	return nil, fmt.Errorf("unsupported backend url scheme %q", u.Scheme)
}

func NewDialer(cfg DialerConfig, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Dialer {
	d := new(Dialer)

	d.httpClient = rest.NewHTTPClient()
	d.httpClient.Timeout = cfg.Timeout
	d.dbConfig = cfg.DB

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d
}
