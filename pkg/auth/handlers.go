// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/identity"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

const (
	incorrectCredentials   = "incorrect credentials"
	codeInvalidCredentials = "invalid_credentials"
)

type systemLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type peladaLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/auth/system/login", a.handleSystemLogin)
	mux.Post("/api/v0/auth/system/logout", a.handleSystemLogout)
	mux.Post("/api/v0/auth/pelada/login", a.handlePeladaLogin)
	mux.Post("/api/v0/auth/pelada/logout", a.handlePeladaLogout)
	mux.Get("/api/v0/auth/session", a.handleSession)
}

func (a *API) handleSystemLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.handleSystemLogin")
	defer span.End()

	req := new(systemLoginRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil || req.Email == "" {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	sid, _ := identity.SessionIDFromContext(ctx)
	state, err := a.service.SystemLogin(ctx, sid, req.Email, req.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "System login succeeded", state)
}

func (a *API) handlePeladaLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.handlePeladaLogin")
	defer span.End()

	req := new(peladaLoginRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil || req.Username == "" {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	sid, _ := identity.SessionIDFromContext(ctx)
	state, err := a.service.PeladaLogin(ctx, sid, req.Username, req.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "Pelada login succeeded", state)
}

func (a *API) handleSystemLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.handleSystemLogout")
	defer span.End()

	sid, _ := identity.SessionIDFromContext(ctx)
	state, err := a.service.SystemLogout(ctx, sid)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "Logged out", state)
}

func (a *API) handlePeladaLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.handlePeladaLogout")
	defer span.End()

	sid, _ := identity.SessionIDFromContext(ctx)
	state, err := a.service.PeladaLogout(ctx, sid)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "Logged out of the pelada", state)
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.handleSession")
	defer span.End()

	sid, _ := identity.SessionIDFromContext(ctx)
	state, err := a.service.Session(ctx, sid)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "Current session", state)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status, code, message := ErrorResponse(err)
	switch {
	case status == http.StatusInternalServerError:
		a.logger.Errorf("authentication request failed: %v", err)
	case code == codeInvalidCredentials:
		a.logger.Debugf("credentials rejected: %v", err)
	}

	_ = types.WriteError(w, status, code, message)
}

// ErrorResponse maps an authentication error to its HTTP status, error code and
// user facing message. An unknown tenant, an unknown user and a wrong password
// answer alike, the distinct kinds only reach the logs.
func ErrorResponse(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingSession):
		return http.StatusBadRequest, "missing_session", "missing session cookie"
	case errors.Is(err, tenant.ErrTenantNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, codeInvalidCredentials, incorrectCredentials
	case errors.Is(err, tenant.ErrTenantInactive):
		return http.StatusForbidden, "tenant_inactive", "client is not active"
	case errors.Is(err, ErrNotSystemAuthenticated):
		return http.StatusUnauthorized, "not_system_authenticated", "system login required"
	case errors.Is(err, backend.ErrUnreachable), errors.Is(err, backend.ErrUnauthorized), errors.Is(err, backend.ErrNotFound):
		return http.StatusBadGateway, "backend_unavailable", "client backend unavailable"
	}

	return http.StatusInternalServerError, "internal", "internal error"
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
