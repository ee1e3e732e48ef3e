// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/pelada-admin/internal/types"
)

type StorageInterface interface {
	UpsertClient(ctx context.Context, c *types.TenantConfig) (*types.TenantConfig, error)
	GetClientByEmail(ctx context.Context, email string) (*types.TenantConfig, error)
	ListClients(ctx context.Context) ([]*types.TenantConfig, error)
}
