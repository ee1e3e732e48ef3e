// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"
	"strings"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// untracedPaths are polled by orchestration and scrapers, tracing them only adds noise
var untracedPaths = []string{
	"/api/v0/status",
	"/api/v0/metrics",
}

// Middleware wraps HTTP handlers with OpenTelemetry instrumentation
type Middleware struct {
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (mdw *Middleware) OpenTelemetry(handler http.Handler) http.Handler {
	return otelhttp.NewHandler(
		handler,
		"server",
		otelhttp.WithFilter(func(r *http.Request) bool {
			for _, p := range untracedPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					return false
				}
			}
			return true
		}),
	)
}

// NewMiddleware returns a tracing Middleware
func NewMiddleware(monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.monitor = monitor
	mdw.logger = logger

	return mdw
}
