// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package setup

import (
	"context"

	"github.com/canonical/pelada-admin/internal/backend"
)

type ConnectionsInterface interface {
	GetConnection(ctx context.Context, email string) (backend.ClientInterface, error)
}

type ServiceInterface interface {
	Bootstrap(ctx context.Context, email, adminPassword string) error
}
