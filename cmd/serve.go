// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/pelada-admin/internal/config"
	"github.com/canonical/pelada-admin/internal/identity"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/monitoring/prometheus"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/auth"
	"github.com/canonical/pelada-admin/pkg/authentication"
	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/dashboard"
	"github.com/canonical/pelada-admin/pkg/session"
	"github.com/canonical/pelada-admin/pkg/setup"
	"github.com/canonical/pelada-admin/pkg/status"
	"github.com/canonical/pelada-admin/pkg/web"
)

const (
	serviceName = "pelada-admin"

	sessionMemory = "memory"
	sessionRedis  = "redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs, err := loadSpecs()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRatio, logger))

	ctx := context.Background()

	registry, err := newRegistry(ctx, specs, tracer, monitor, logger)
	if err != nil {
		return err
	}
	defer registry.close()

	connections := newConnectionFactory(specs, registry, tracer, monitor, logger)
	defer connections.ClearCache()

	checks := make(map[string]status.CheckerInterface)
	if registry.dbClient != nil {
		checks["database"] = registry.dbClient
	}

	sessions, closeSessions, err := newSessionBackend(ctx, specs, tracer, monitor, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	if redis, ok := sessions.(*session.RedisBackend); ok {
		checks["redis"] = redis
	}

	users := credentials.NewBcryptVerifier(0, tracer, monitor, logger)
	system, err := credentials.NewSystemVerifier(specs.SystemLoginMode, users, logger)
	if err != nil {
		return err
	}

	adminVerifier, err := authentication.NewAuthenticator(
		ctx,
		authentication.Config{
			Enabled: specs.AdminAuthEnabled,
			Issuer:  specs.AdminJWTIssuer,
			JWKSURL: specs.AdminJWKSURL,
			Policy: authentication.Policy{
				AllowedSubjects: specs.AdminJWTAllowedSubjects,
				RequiredScope:   specs.AdminJWTRequiredScope,
			},
		},
		nil,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to set up admin authentication: %w", err)
	}

	router := web.NewRouter(
		web.Config{
			CORSAllowedOrigins: specs.CORSAllowedOrigins,
			Session: identity.Config{
				CookieName: specs.SessionCookie,
				TTL:        specs.SessionTTL,
				Secure:     specs.SessionCookieTLS,
			},
			AdminVerifier: adminVerifier,
			DBClient:      registry.dbClient,
			Checks:        checks,
		},
		web.Services{
			Auth:         auth.NewService(sessions, registry, connections, users, system, tracer, monitor, logger),
			Dashboard:    dashboard.NewService(nil, tracer, monitor, logger),
			Registry:     registry,
			Connections:  connections,
			Bootstrapper: setup.NewService(connections, users, tracer, monitor, logger),
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newSessionBackend(ctx context.Context, specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (session.BackendInterface, func(), error) {
	switch specs.SessionBackend {
	case sessionMemory, "":
		logger.Warn("session state is kept in memory, sessions are lost on restart")
		return session.NewMemoryBackend(), func() {}, nil
	case sessionRedis:
		r, err := session.NewRedisBackend(ctx, specs.RedisURL, specs.SessionTTL, tracer, monitor, logger)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown session backend %q", specs.SessionBackend)
}
