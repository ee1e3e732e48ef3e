// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/version"
)

const checkTimeout = 2 * time.Second

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type API struct {
	checks map[string]CheckerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	names := make([]string, 0, len(a.checks))
	for name := range a.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	s := Status{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK

	for _, name := range names {
		tags := map[string]string{"component": name}

		if err := a.checks[name].Ping(ctx); err != nil {
			a.logger.Warnf("status check %s failed: %v", name, err)
			_ = a.monitor.SetDependencyAvailability(tags, 0)

			s.Checks[name] = "unavailable"
			s.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}

		_ = a.monitor.SetDependencyAvailability(tags, 1)
		s.Checks[name] = "ok"
	}

	_ = types.WriteJSON(w, code, s.Status, s)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_ = types.WriteJSON(w, http.StatusOK, "Build info", version.Info())
}

func NewAPI(checks map[string]CheckerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.checks = checks
	if a.checks == nil {
		a.checks = make(map[string]CheckerInterface)
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
