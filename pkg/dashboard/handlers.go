// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/identity"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/auth"
)

type API struct {
	sessions auth.ServiceInterface
	service  ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/dashboard", a.handleDashboard)
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "dashboard.API.handleDashboard")
	defer span.End()

	sid, _ := identity.SessionIDFromContext(ctx)

	state, conn, err := a.sessions.Connection(ctx, sid)
	if err != nil {
		status, code, message := auth.ErrorResponse(err)
		_ = types.WriteError(w, status, code, message)
		return
	}

	if !state.IsFullyAuthenticated() {
		_ = types.WriteError(w, http.StatusForbidden, "not_fully_authenticated", "pelada login required")
		return
	}

	counts, err := a.service.Counts(ctx, conn)
	if err != nil {
		a.logger.Errorf("failed to build dashboard for %s: %v", state.TenantEmail(), err)

		status, code, message := auth.ErrorResponse(err)
		_ = types.WriteError(w, status, code, message)
		return
	}

	u := state.User()
	summary := &Summary{
		Tenant: state.Tenant(),
		User:   &User{Username: u.Username, Role: u.Role, Record: u.Record},
		Counts: counts,
	}

	_ = types.WriteJSON(w, http.StatusOK, "Dashboard", summary)
}

func NewAPI(sessions auth.ServiceInterface, service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.sessions = sessions
	a.service = service

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
