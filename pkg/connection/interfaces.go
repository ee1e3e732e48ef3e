// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package connection

import (
	"context"

	"github.com/canonical/pelada-admin/internal/backend"
)

// DialerInterface opens a handle towards the backend at url authenticated with key.
type DialerInterface interface {
	Dial(ctx context.Context, url, key string) (backend.ClientInterface, error)
}

type FactoryInterface interface {
	GetConnection(ctx context.Context, email string) (backend.ClientInterface, error)
	ClearCache(emails ...string)
	ValidateConnection(ctx context.Context, url, key string) bool
}
