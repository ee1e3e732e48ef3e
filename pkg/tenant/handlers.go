// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	itypes "github.com/canonical/pelada-admin/internal/types"
	"github.com/canonical/pelada-admin/pkg/credentials"
)

type clientRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	URL             string `json:"url"`
	Key             string `json:"key"`
	ResponsibleName string `json:"responsible_name"`
	Phone           string `json:"phone"`
	PeladaName      string `json:"pelada_name"`
	Status          string `json:"status"`
	SystemPassword  string `json:"system_password"`
}

type validateRequest struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type bootstrapRequest struct {
	AdminPassword string `json:"admin_password"`
}

// API serves the client administration endpoints.
type API struct {
	registry     RegistryInterface
	connections  ConnectionsInterface
	bootstrapper BootstrapperInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/clients", a.handleList)
	mux.Post("/api/v0/clients", a.handleAdd)
	mux.Post("/api/v0/clients/validate", a.handleValidate)
	mux.Delete("/api/v0/clients/connections", a.handleClearAll)
	mux.Delete("/api/v0/clients/{email}/connection", a.handleClear)
	mux.Post("/api/v0/clients/{email}/bootstrap", a.handleBootstrap)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleList")
	defer span.End()

	tenants, err := a.registry.ListAll(ctx)
	if err != nil {
		a.logger.Errorf("failed to list clients: %v", err)
		_ = types.WriteError(w, http.StatusInternalServerError, "internal", "failed to list clients")
		return
	}

	_ = types.WriteJSON(w, http.StatusOK, "List of clients", tenants)
}

func (a *API) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleAdd")
	defer span.End()

	req := new(clientRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "error parsing JSON payload")
		return
	}

	cfg := &itypes.TenantConfig{
		Name:            req.Name,
		Email:           req.Email,
		URL:             req.URL,
		Key:             req.Key,
		ResponsibleName: req.ResponsibleName,
		Phone:           req.Phone,
		PeladaName:      req.PeladaName,
		Status:          itypes.TenantStatus(req.Status),
	}

	if req.SystemPassword != "" {
		h, err := credentials.HashPassword(req.SystemPassword)
		if err != nil {
			a.logger.Errorf("failed to hash system password: %v", err)
			_ = types.WriteError(w, http.StatusInternalServerError, "internal", "failed to store client")
			return
		}
		cfg.SystemPasswordHash = h
	}

	stored, err := a.registry.Add(ctx, cfg)
	if errors.Is(err, ErrInvalidTenant) {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_client", err.Error())
		return
	}

	if err != nil {
		a.logger.Errorf("failed to add client %s: %v", req.Email, err)
		_ = types.WriteError(w, http.StatusInternalServerError, "internal", "failed to store client")
		return
	}

	// a replaced tenant may point to another backend
	a.connections.ClearCache(stored.Email)

	_ = types.WriteJSON(w, http.StatusCreated, "Client registered", stored)
}

func (a *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleValidate")
	defer span.End()

	req := new(validateRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil || req.URL == "" {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "url and key are required")
		return
	}

	valid := a.connections.ValidateConnection(ctx, req.URL, req.Key)

	_ = types.WriteJSON(w, http.StatusOK, "Connection checked", map[string]bool{"valid": valid})
}

func (a *API) handleClear(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "tenant.API.handleClear")
	defer span.End()

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid email")
		return
	}

	a.connections.ClearCache(email)

	_ = types.WriteJSON(w, http.StatusOK, "Connection cleared", nil)
}

func (a *API) handleClearAll(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "tenant.API.handleClearAll")
	defer span.End()

	a.connections.ClearCache()

	_ = types.WriteJSON(w, http.StatusOK, "All connections cleared", nil)
}

func (a *API) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleBootstrap")
	defer span.End()

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid email")
		return
	}

	req := new(bootstrapRequest)
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			_ = types.WriteError(w, http.StatusBadRequest, "invalid_request", "error parsing JSON payload")
			return
		}
	}

	err = a.bootstrapper.Bootstrap(ctx, email, req.AdminPassword)
	switch {
	case err == nil:
		_ = types.WriteJSON(w, http.StatusOK, "Database bootstrapped", nil)
	case errors.Is(err, ErrTenantNotFound):
		_ = types.WriteError(w, http.StatusNotFound, "tenant_not_found", "client not found")
	case errors.Is(err, ErrTenantInactive):
		_ = types.WriteError(w, http.StatusForbidden, "tenant_inactive", "client is not active")
	case errors.Is(err, backend.ErrUnauthorized):
		_ = types.WriteError(w, http.StatusBadGateway, "backend_unauthorized", "backend rejected the client key")
	case errors.Is(err, backend.ErrUnreachable):
		_ = types.WriteError(w, http.StatusBadGateway, "backend_unreachable", "backend unreachable")
	default:
		a.logger.Errorf("failed to bootstrap %s: %v", email, err)
		_ = types.WriteError(w, http.StatusInternalServerError, "internal", "failed to bootstrap database")
	}
}

func NewAPI(registry RegistryInterface, connections ConnectionsInterface, bootstrapper BootstrapperInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.registry = registry
	a.connections = connections
	a.bootstrapper = bootstrapper

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
