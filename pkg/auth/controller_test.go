// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
	"github.com/canonical/pelada-admin/internal/types"
	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/session"
	"github.com/canonical/pelada-admin/pkg/tenant"
)

//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_auth.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_session.go -source=../session/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_backend.go -source=../../internal/backend/interfaces.go

const (
	tenantEmail = "t@x.com"
	otherEmail  = "other@x.com"
	sid         = "0192d3a4-sid"
)

type fixture struct {
	sessions    *session.MemoryBackend
	store       *session.Store
	registry    *tenant.MemoryRegistry
	connections *MockConnectionsInterface
	conn        *MockClientInterface
	users       *credentials.BcryptVerifier
	system      credentials.SystemVerifierInterface
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	f := new(fixture)

	f.sessions = session.NewMemoryBackend()

	store, err := session.NewStore(sid, f.sessions, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.store = store

	f.registry = tenant.NewMemoryRegistry(tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	f.connections = NewMockConnectionsInterface(ctrl)
	f.conn = NewMockClientInterface(ctrl)
	f.users = credentials.NewBcryptVerifier(bcrypt.MinCost, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	f.system = credentials.AcceptAnySystemVerifier{}

	return f
}

func (f *fixture) addTenant(t *testing.T, email string, status types.TenantStatus) {
	t.Helper()

	_, err := f.registry.Add(context.TODO(), &types.TenantConfig{
		Name:   "Pelada de Quarta",
		Email:  email,
		URL:    "https://project.supabase.co",
		Key:    "anon-key",
		Status: status,
	})
	if err != nil {
		t.Fatalf("unexpected error adding tenant: %v", err)
	}
}

func (f *fixture) controller(store session.StoreInterface) *Controller {
	return NewController(store, f.registry, f.connections, f.users, f.system, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func (f *fixture) get(t *testing.T, k session.Key) (string, bool) {
	t.Helper()

	v, found, err := f.store.Get(context.TODO(), k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v, found
}

func userRow(t *testing.T, username, password string) backend.Row {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return backend.Row{"id": "1", "username": username, "role": "admin", "senha": string(hash)}
}

func TestSystemLoginThenPeladaLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)
	f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, q backend.Query) ([]backend.Row, error) {
			if len(q.Filters) != 1 || q.Filters[0].Column != "username" || q.Filters[0].Value != "joao" {
				t.Errorf("unexpected filters %+v", q.Filters)
			}
			return []backend.Row{userRow(t, "joao", "secret")}, nil
		},
	)

	c := f.controller(f.store)

	state, err := c.SystemLogin(context.TODO(), " T@X.com ", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Tier() != SystemAuthenticated {
		t.Fatalf("expected system_authenticated, got %s", state.Tier())
	}

	if state.TenantEmail() != tenantEmail {
		t.Errorf("expected tenant %s, got %s", tenantEmail, state.TenantEmail())
	}

	if c.Connection() != f.conn {
		t.Error("expected the tenant connection to be attached")
	}

	raw, found := f.get(t, session.CurrentClientKey())
	if !found {
		t.Fatal("expected a persisted tenant snapshot")
	}

	snapshot := new(types.TenantConfig)
	if err := json.Unmarshal([]byte(raw), snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Email != tenantEmail || snapshot.Key != "" {
		t.Errorf("unexpected snapshot %+v", snapshot)
	}

	if v, _ := f.get(t, session.SystemAuthKey()); v != authenticatedFlag {
		t.Errorf("expected system auth flag, got %q", v)
	}

	state, err = c.PeladaLogin(context.TODO(), "joao", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !state.IsFullyAuthenticated() {
		t.Fatalf("expected fully_authenticated, got %s", state.Tier())
	}

	user := state.User()
	if user.Username != "joao" || user.Role != "admin" || user.TenantEmail != tenantEmail {
		t.Errorf("unexpected user %+v", user)
	}

	if _, ok := user.Record["senha"]; ok {
		t.Error("credential column leaked into the user record")
	}

	if v, _ := f.get(t, session.PeladaAuthKey(tenantEmail)); v != authenticatedFlag {
		t.Errorf("expected pelada auth flag, got %q", v)
	}
}

func TestSystemLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   types.TenantStatus
		email    string
		password bool
		expected error
	}{
		{
			name:     "unknown tenant",
			status:   types.TenantActive,
			email:    otherEmail,
			expected: tenant.ErrTenantNotFound,
		},
		{
			name:     "inactive tenant",
			status:   types.TenantInactive,
			email:    tenantEmail,
			expected: tenant.ErrTenantInactive,
		},
		{
			name:     "wrong system password",
			status:   types.TenantActive,
			email:    tenantEmail,
			password: true,
			expected: ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			f.addTenant(t, tenantEmail, test.status)

			if test.password {
				f.system = credentials.NewPasswordSystemVerifier(f.users)
			}

			c := f.controller(f.store)

			state, err := c.SystemLogin(context.TODO(), test.email, "wrong")
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected error %v, got %v", test.expected, err)
			}

			if state.Tier() != Anonymous {
				t.Errorf("expected anonymous, got %s", state.Tier())
			}

			if f.sessions.Len() != 0 {
				t.Errorf("expected no session writes, got %d entries", f.sessions.Len())
			}
		})
	}
}

func TestSystemLoginBackendUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(nil, backend.ErrUnreachable)

	c := f.controller(f.store)

	if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); !errors.Is(err, backend.ErrUnreachable) {
		t.Fatalf("expected unreachable error, got %v", err)
	}

	if f.sessions.Len() != 0 {
		t.Errorf("expected no session writes, got %d entries", f.sessions.Len())
	}
}

func TestPeladaLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		rows     []backend.Row
		err      error
		expected error
	}{
		{
			name:     "wrong password",
			rows:     []backend.Row{userRow(t, "joao", "secret")},
			expected: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			rows:     []backend.Row{},
			expected: ErrUserNotFound,
		},
		{
			name:     "duplicated username",
			rows:     []backend.Row{userRow(t, "joao", "wrong"), userRow(t, "joao", "wrong")},
			expected: ErrUserNotFound,
		},
		{
			name:     "missing credential column",
			rows:     []backend.Row{{"username": "joao"}},
			expected: ErrInvalidCredentials,
		},
		{
			name:     "backend failure",
			err:      backend.ErrUnreachable,
			expected: backend.ErrUnreachable,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			f.addTenant(t, tenantEmail, types.TenantActive)

			f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)
			f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).Return(test.rows, test.err)

			c := f.controller(f.store)

			if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			state, err := c.PeladaLogin(context.TODO(), "joao", "wrong")
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected error %v, got %v", test.expected, err)
			}

			if state.Tier() != SystemAuthenticated {
				t.Errorf("expected system_authenticated, got %s", state.Tier())
			}

			if _, found := f.get(t, session.PeladaAuthKey(tenantEmail)); found {
				t.Error("expected no pelada auth flag")
			}
		})
	}
}

func TestPeladaLoginWhileAnonymousDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	store := NewMockStoreInterface(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil).AnyTimes()
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	c := f.controller(store)
	c.Restore(context.TODO())

	state, err := c.PeladaLogin(context.TODO(), "joao", "secret")
	if !errors.Is(err, ErrNotSystemAuthenticated) {
		t.Fatalf("expected ErrNotSystemAuthenticated, got %v", err)
	}

	if state.Tier() != Anonymous {
		t.Errorf("expected anonymous, got %s", state.Tier())
	}

	if state, _ = c.PeladaLogout(context.TODO()); state.Tier() != Anonymous {
		t.Errorf("expected anonymous after pelada logout, got %s", state.Tier())
	}
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)
	f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).Return([]backend.Row{userRow(t, "joao", "secret")}, nil).Times(2)

	c := f.controller(f.store)

	if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.PeladaLogin(context.TODO(), "joao", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.PeladaLogout(context.TODO())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Tier() != SystemAuthenticated || state.User() != nil {
		t.Errorf("expected system_authenticated without user, got %s", state.Tier())
	}

	if _, found := f.get(t, session.PeladaUserKey(tenantEmail)); found {
		t.Error("expected the pelada user to be removed")
	}

	if _, err := c.PeladaLogin(context.TODO(), "joao", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err = c.SystemLogout(context.TODO())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Tier() != Anonymous || c.Connection() != nil {
		t.Errorf("expected anonymous without connection, got %s", state.Tier())
	}

	if f.sessions.Len() != 0 {
		t.Errorf("expected empty session storage, got %d entries", f.sessions.Len())
	}

	restarted := f.controller(f.store)
	if state := restarted.Restore(context.TODO()); state.Tier() != Anonymous {
		t.Errorf("expected anonymous after restart, got %s", state.Tier())
	}
}

func TestSwitchingTenantDropsPreviousPeladaSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)
	f.addTenant(t, otherEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), gomock.Any()).Return(f.conn, nil).Times(2)
	f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).Return([]backend.Row{userRow(t, "joao", "secret")}, nil)

	c := f.controller(f.store)

	if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.PeladaLogin(context.TODO(), "joao", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.SystemLogin(context.TODO(), otherEmail, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Tier() != SystemAuthenticated || state.TenantEmail() != otherEmail {
		t.Errorf("expected system session of %s, got %s for %s", otherEmail, state.Tier(), state.TenantEmail())
	}

	for _, k := range session.TenantKeys(tenantEmail) {
		if _, found := f.get(t, k); found {
			t.Errorf("expected %s to be removed", k)
		}
	}
}

func TestRestore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil).Times(2)
	f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).Return([]backend.Row{userRow(t, "joao", "secret")}, nil)

	c := f.controller(f.store)

	if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.PeladaLogin(context.TODO(), "joao", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := f.controller(f.store).Restore(context.TODO())

	if !restored.IsFullyAuthenticated() {
		t.Fatalf("expected fully_authenticated, got %s", restored.Tier())
	}

	if restored.TenantEmail() != tenantEmail || restored.User().Username != "joao" {
		t.Errorf("unexpected restored state %s %+v", restored.TenantEmail(), restored.User())
	}
}

func TestRestoreClearsInvalidSessions(t *testing.T) {
	snapshot := func(email string) string {
		b, _ := json.Marshal(&types.TenantConfig{Name: "p", Email: email, URL: "https://project.supabase.co", Status: types.TenantActive})
		return string(b)
	}

	user := func(email string) string {
		b, _ := json.Marshal(&types.PeladaUser{TenantEmail: email, Username: "joao", Role: "admin"})
		return string(b)
	}

	tests := []struct {
		name      string
		entries   map[session.Key]string
		status    types.TenantStatus
		connect   bool
		expected  Tier
		remaining int
	}{
		{
			name: "corrupt snapshot",
			entries: map[session.Key]string{
				session.CurrentClientKey(): "{not json",
				session.SystemAuthKey():    authenticatedFlag,
			},
			status:   types.TenantActive,
			expected: Anonymous,
		},
		{
			name: "snapshot without flag",
			entries: map[session.Key]string{
				session.CurrentClientKey(): snapshot(tenantEmail),
			},
			status:   types.TenantActive,
			expected: Anonymous,
		},
		{
			name: "flag without snapshot",
			entries: map[session.Key]string{
				session.SystemAuthKey(): authenticatedFlag,
			},
			status:   types.TenantActive,
			expected: Anonymous,
		},
		{
			name: "tenant deactivated",
			entries: map[session.Key]string{
				session.CurrentClientKey():         snapshot(tenantEmail),
				session.SystemAuthKey():            authenticatedFlag,
				session.PeladaUserKey(tenantEmail): user(tenantEmail),
				session.PeladaAuthKey(tenantEmail): authenticatedFlag,
			},
			status:   types.TenantInactive,
			expected: Anonymous,
		},
		{
			name: "tenant removed",
			entries: map[session.Key]string{
				session.CurrentClientKey(): snapshot(otherEmail),
				session.SystemAuthKey():    authenticatedFlag,
			},
			status:   types.TenantActive,
			expected: Anonymous,
		},
		{
			name: "pelada user without flag",
			entries: map[session.Key]string{
				session.CurrentClientKey():         snapshot(tenantEmail),
				session.SystemAuthKey():            authenticatedFlag,
				session.PeladaUserKey(tenantEmail): user(tenantEmail),
			},
			status:    types.TenantActive,
			connect:   true,
			expected:  SystemAuthenticated,
			remaining: 2,
		},
		{
			name: "pelada user of another tenant",
			entries: map[session.Key]string{
				session.CurrentClientKey():         snapshot(tenantEmail),
				session.SystemAuthKey():            authenticatedFlag,
				session.PeladaUserKey(tenantEmail): user(otherEmail),
				session.PeladaAuthKey(tenantEmail): authenticatedFlag,
			},
			status:    types.TenantActive,
			connect:   true,
			expected:  SystemAuthenticated,
			remaining: 2,
		},
		{
			name: "corrupt pelada user",
			entries: map[session.Key]string{
				session.CurrentClientKey():         snapshot(tenantEmail),
				session.SystemAuthKey():            authenticatedFlag,
				session.PeladaUserKey(tenantEmail): "[]",
				session.PeladaAuthKey(tenantEmail): authenticatedFlag,
			},
			status:    types.TenantActive,
			connect:   true,
			expected:  SystemAuthenticated,
			remaining: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			f.addTenant(t, tenantEmail, test.status)

			if test.connect {
				f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)
			}

			for k, v := range test.entries {
				if err := f.store.Set(context.TODO(), k, v); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			state := f.controller(f.store).Restore(context.TODO())

			if state.Tier() != test.expected {
				t.Errorf("expected %s, got %s", test.expected, state.Tier())
			}

			if f.sessions.Len() != test.remaining {
				t.Errorf("expected %d session entries left, got %d", test.remaining, f.sessions.Len())
			}
		})
	}
}

func TestRestoreClearsWhenConnectionFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	gomock.InOrder(
		f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil),
		f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(nil, backend.ErrUnauthorized),
	)

	if _, err := f.controller(f.store).SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state := f.controller(f.store).Restore(context.TODO()); state.Tier() != Anonymous {
		t.Errorf("expected anonymous, got %s", state.Tier())
	}

	if f.sessions.Len() != 0 {
		t.Errorf("expected empty session storage, got %d entries", f.sessions.Len())
	}
}

type faultyStore struct {
	*session.Store

	failOn session.Key
}

func (s *faultyStore) Set(ctx context.Context, k session.Key, value string) error {
	if k == s.failOn {
		return errors.New("storage full")
	}
	return s.Store.Set(ctx, k, value)
}

func TestSystemLoginRollsBackOnStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)

	c := f.controller(&faultyStore{Store: f.store, failOn: session.SystemAuthKey()})

	state, err := c.SystemLogin(context.TODO(), tenantEmail, "x")
	if err == nil {
		t.Fatal("expected an error")
	}

	if state.Tier() != Anonymous || c.Connection() != nil {
		t.Errorf("expected anonymous without connection, got %s", state.Tier())
	}

	if f.sessions.Len() != 0 {
		t.Errorf("expected the tenant snapshot to be rolled back, got %d entries", f.sessions.Len())
	}
}

func TestPeladaLoginRollsBackOnStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.addTenant(t, tenantEmail, types.TenantActive)

	f.connections.EXPECT().GetConnection(gomock.Any(), tenantEmail).Return(f.conn, nil)
	f.conn.EXPECT().Select(gomock.Any(), "users", gomock.Any()).Return([]backend.Row{userRow(t, "joao", "secret")}, nil)

	c := f.controller(&faultyStore{Store: f.store, failOn: session.PeladaAuthKey(tenantEmail)})

	if _, err := c.SystemLogin(context.TODO(), tenantEmail, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.PeladaLogin(context.TODO(), "joao", "secret")
	if err == nil {
		t.Fatal("expected an error")
	}

	if state.Tier() != SystemAuthenticated {
		t.Errorf("expected system_authenticated, got %s", state.Tier())
	}

	if _, found := f.get(t, session.PeladaUserKey(tenantEmail)); found {
		t.Error("expected the pelada user to be rolled back")
	}
}
