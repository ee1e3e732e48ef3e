// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/canonical/pelada-admin/internal/config"
	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/storage"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/connection"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

const (
	registryMemory   = "memory"
	registryPostgres = "postgres"
)

// loadSpecs reads the optional dotenv file, then the process environment.
func loadSpecs() (*config.EnvSpec, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	return specs, nil
}

func controlPlaneDBConfig(specs *config.EnvSpec) db.Config {
	return db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
}

// registry is the client registry selected by the configuration. dbClient is
// nil unless the registry lives in the control plane database.
type registry struct {
	tenant.RegistryInterface

	dbClient db.DBClientInterface
	close    func()
}

func newRegistry(ctx context.Context, specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*registry, error) {
	r := &registry{close: func() {}}

	switch specs.RegistryBackend {
	case registryMemory, "":
		r.RegistryInterface = tenant.NewMemoryRegistry(tracer, monitor, logger)
	case registryPostgres:
		dbClient, err := db.NewDBClient(controlPlaneDBConfig(specs), tracer, monitor, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create database client: %w", err)
		}

		sr, err := tenant.NewStorageRegistry(storage.NewStorage(dbClient, tracer, monitor, logger), specs.RegistryCacheMB<<20, tracer, monitor, logger)
		if err != nil {
			dbClient.Close()
			return nil, err
		}

		r.RegistryInterface = sr
		r.dbClient = dbClient
		r.close = func() {
			sr.Close()
			dbClient.Close()
		}
	default:
		return nil, fmt.Errorf("unknown registry backend %q", specs.RegistryBackend)
	}

	if specs.ClientsFile != "" {
		n, err := tenant.Seed(ctx, r, specs.ClientsFile)
		if err != nil {
			r.close()
			return nil, err
		}
		logger.Infof("registered %d clients from %s", n, specs.ClientsFile)
	}

	return r, nil
}

func newConnectionFactory(specs *config.EnvSpec, registry tenant.RegistryInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *connection.Factory {
	dialerConfig := connection.DialerConfig{
		Timeout: specs.BackendTimeout,
		DB: db.Config{
			MaxConns:        specs.TenantDBMaxConns,
			MaxConnLifetime: specs.DBMaxConnLifetime,
			MaxConnIdleTime: specs.DBMaxConnIdleTime,
			TracingEnabled:  specs.TracingEnabled,
		},
	}

	return connection.NewFactory(registry, connection.NewDialer(dialerConfig, tracer, monitor, logger), tracer, monitor, logger)
}

// cliTelemetry is the noop stack used by one-shot commands.
func cliTelemetry(specs *config.EnvSpec) (tracing.TracingInterface, monitoring.MonitorInterface, logging.LoggerInterface) {
	logger := logging.NewLogger(specs.LogLevel)
	return tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor(serviceName), logger
}
