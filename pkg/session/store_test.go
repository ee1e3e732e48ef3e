// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

func newTestStore(t *testing.T, sid string, backend BackendInterface) *Store {
	t.Helper()

	s, err := NewStore(sid, backend, tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNewStoreRequiresSessionID(t *testing.T) {
	_, err := NewStore("", NewMemoryBackend(), tracing.NewTracer(tracing.NewNoopConfig()), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	if !errors.Is(err, ErrMissingSessionID) {
		t.Errorf("expected ErrMissingSessionID, got %v", err)
	}
}

func TestStoreIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	first := newTestStore(t, "sid-1", backend)
	second := newTestStore(t, "sid-2", backend)

	if err := first.Set(ctx, SystemAuthKey(), "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found, _ := second.Get(ctx, SystemAuthKey()); found {
		t.Errorf("entry leaked into another session")
	}

	v, found, err := first.Get(ctx, SystemAuthKey())
	if err != nil || !found || v != "true" {
		t.Errorf("expected stored value, got %q %v %v", v, found, err)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := newTestStore(t, "sid-1", backend)

	_ = s.Set(ctx, CurrentClientKey(), "{}")
	_ = s.Set(ctx, SystemAuthKey(), "true")
	_ = s.Set(ctx, PeladaAuthKey("t@x.com"), "true")

	if err := s.Delete(ctx, CurrentClientKey(), SystemAuthKey(), PeladaUserKey("t@x.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.Len() != 1 {
		t.Errorf("expected 1 entry left, got %d", backend.Len())
	}

	if err := s.Delete(ctx); err != nil {
		t.Errorf("deleting nothing should not fail: %v", err)
	}
}
