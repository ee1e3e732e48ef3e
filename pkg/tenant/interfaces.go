// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/pelada-admin/internal/types"
)

// RegistryInterface resolves tenant login emails to their backend configuration.
type RegistryInterface interface {
	// Lookup reports found=false for unknown emails, errors are infrastructure failures only.
	Lookup(ctx context.Context, email string) (*types.TenantConfig, bool, error)
	Add(ctx context.Context, cfg *types.TenantConfig) (*types.TenantConfig, error)
	ListAll(ctx context.Context) ([]*types.TenantConfig, error)
}

type StorageInterface interface {
	UpsertClient(ctx context.Context, c *types.TenantConfig) (*types.TenantConfig, error)
	GetClientByEmail(ctx context.Context, email string) (*types.TenantConfig, error)
	ListClients(ctx context.Context) ([]*types.TenantConfig, error)
}

// ConnectionsInterface is the part of the connection factory the admin API drives.
type ConnectionsInterface interface {
	ClearCache(emails ...string)
	ValidateConnection(ctx context.Context, url, key string) bool
}

type BootstrapperInterface interface {
	Bootstrap(ctx context.Context, email, adminPassword string) error
}
