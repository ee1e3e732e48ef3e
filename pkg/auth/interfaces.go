// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"

	"github.com/canonical/pelada-admin/internal/backend"
)

type ConnectionsInterface interface {
	GetConnection(ctx context.Context, email string) (backend.ClientInterface, error)
}

// ServiceInterface drives the authentication state of browser sessions, identified by sid.
type ServiceInterface interface {
	SystemLogin(ctx context.Context, sid, email, password string) (State, error)
	PeladaLogin(ctx context.Context, sid, username, password string) (State, error)
	SystemLogout(ctx context.Context, sid string) (State, error)
	PeladaLogout(ctx context.Context, sid string) (State, error)
	Session(ctx context.Context, sid string) (State, error)
	// Connection returns the tenant handle of a session at least system authenticated.
	Connection(ctx context.Context, sid string) (State, backend.ClientInterface, error)
}
