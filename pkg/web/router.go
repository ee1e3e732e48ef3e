// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/pelada-admin/internal/db"
	"github.com/canonical/pelada-admin/internal/identity"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/auth"
	"github.com/canonical/pelada-admin/pkg/authentication"
	"github.com/canonical/pelada-admin/pkg/dashboard"
	"github.com/canonical/pelada-admin/pkg/metrics"
	"github.com/canonical/pelada-admin/pkg/status"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

type Config struct {
	CORSAllowedOrigins []string
	Session            identity.Config
	// AdminVerifier guards the client administration routes
	AdminVerifier authentication.TokenVerifierInterface
	// DBClient wraps admin writes in a transaction, nil when the registry is not database backed
	DBClient db.DBClientInterface
	Checks   map[string]status.CheckerInterface
}

type Services struct {
	Auth         auth.ServiceInterface
	Dashboard    dashboard.ServiceInterface
	Registry     tenant.RegistryInterface
	Connections  tenant.ConnectionsInterface
	Bootstrapper tenant.BootstrapperInterface
}

func NewRouter(
	cfg Config,
	services Services,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middleware.Recoverer,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(origins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(cfg.Checks, tracer, monitor, logger).RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(identity.NewMiddleware(cfg.Session, tracer, monitor, logger).HTTPMiddleware)

		auth.NewAPI(services.Auth, tracer, monitor, logger).RegisterEndpoints(r)
		dashboard.NewAPI(services.Auth, services.Dashboard, tracer, monitor, logger).RegisterEndpoints(r)
	})

	router.Group(func(r chi.Router) {
		verifier := cfg.AdminVerifier
		if verifier == nil {
			verifier = authentication.NewNoopVerifier()
		}

		r.Use(authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate())

		if cfg.DBClient != nil {
			r.Use(db.TransactionMiddleware(cfg.DBClient, logger))
		}

		tenant.NewAPI(services.Registry, services.Connections, services.Bootstrapper, tracer, monitor, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
