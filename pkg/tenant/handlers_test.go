// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/pelada-admin/internal/backend"
	httptypes "github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
)

type apiMocks struct {
	registry     *MockRegistryInterface
	connections  *MockConnectionsInterface
	bootstrapper *MockBootstrapperInterface
}

func setupAPI(t *testing.T) (*chi.Mux, apiMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := apiMocks{
		registry:     NewMockRegistryInterface(ctrl),
		connections:  NewMockConnectionsInterface(ctrl),
		bootstrapper: NewMockBootstrapperInterface(ctrl),
	}

	mux := chi.NewMux()
	NewAPI(
		mocks.registry,
		mocks.connections,
		mocks.bootstrapper,
		tracing.NewTracer(tracing.NewNoopConfig()),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	).RegisterEndpoints(mux)

	return mux, mocks
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httptypes.Response {
	t.Helper()

	var r httptypes.Response
	if err := json.NewDecoder(w.Body).Decode(&r); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return r
}

func TestAPI_List(t *testing.T) {
	mux, mocks := setupAPI(t)

	mocks.registry.EXPECT().ListAll(gomock.Any()).Return([]*types.TenantConfig{
		{ID: "1", Email: "t@x.com", Key: "secret-key", SystemPasswordHash: "secret-hash"},
	}, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/clients", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if bytes.Contains(w.Body.Bytes(), []byte("secret-key")) || bytes.Contains(w.Body.Bytes(), []byte("secret-hash")) {
		t.Errorf("secrets leaked in response: %s", w.Body.String())
	}
}

func TestAPI_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(apiMocks)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"name":"Zé","email":"T@x.com","url":"https://ze.supabase.co","key":"k","system_password":"s3cret"}`,
			setupMocks: func(m apiMocks) {
				m.registry.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ interface{}, c *types.TenantConfig) (*types.TenantConfig, error) {
						if bcrypt.CompareHashAndPassword([]byte(c.SystemPasswordHash), []byte("s3cret")) != nil {
							t.Errorf("expected the system password to be hashed")
						}
						return &types.TenantConfig{Email: "t@x.com"}, nil
					},
				)
				m.connections.EXPECT().ClearCache("t@x.com")
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid client",
			body: `{"email":"nope"}`,
			setupMocks: func(m apiMocks) {
				m.registry.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: email", ErrInvalidTenant))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"email":"t@x.com"}`,
			setupMocks: func(m apiMocks) {
				m.registry.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "malformed body",
			body:           `{`,
			setupMocks:     func(apiMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mocks := setupAPI(t)
			tt.setupMocks(mocks)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/clients", bytes.NewBufferString(tt.body)))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Validate(t *testing.T) {
	mux, mocks := setupAPI(t)

	mocks.connections.EXPECT().ValidateConnection(gomock.Any(), "https://ze.supabase.co", "k").Return(false)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/clients/validate", bytes.NewBufferString(`{"url":"https://ze.supabase.co","key":"k"}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data, _ := decode(t, w).Data.(map[string]any)
	if data["valid"] != false {
		t.Errorf("expected valid=false, got %v", data)
	}
}

func TestAPI_ClearCache(t *testing.T) {
	mux, mocks := setupAPI(t)

	gomock.InOrder(
		mocks.connections.EXPECT().ClearCache("t@x.com"),
		mocks.connections.EXPECT().ClearCache(),
	)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v0/clients/t%40x.com/connection", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v0/clients/connections", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPI_Bootstrap(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "unknown tenant", err: ErrTenantNotFound, expectedStatus: http.StatusNotFound, expectedCode: "tenant_not_found"},
		{name: "inactive tenant", err: ErrTenantInactive, expectedStatus: http.StatusForbidden, expectedCode: "tenant_inactive"},
		{name: "backend down", err: fmt.Errorf("exec: %w", backend.ErrUnreachable), expectedStatus: http.StatusBadGateway, expectedCode: "backend_unreachable"},
		{name: "other failure", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mocks := setupAPI(t)

			mocks.bootstrapper.EXPECT().Bootstrap(gomock.Any(), "t@x.com", "admin-pass").Return(tt.err)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/clients/t@x.com/bootstrap", bytes.NewBufferString(`{"admin_password":"admin-pass"}`)))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, w.Code)
			}

			if code := decode(t, w).Code; code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, code)
			}
		})
	}
}
