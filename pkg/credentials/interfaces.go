// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"

	"github.com/canonical/pelada-admin/internal/types"
)

// VerifierInterface checks a claimed secret against a stored credential.
type VerifierInterface interface {
	Verify(ctx context.Context, stored, claimed string) error
	Hash(ctx context.Context, secret string) (string, error)
}

// SystemVerifierInterface decides whether a password opens the system tier of a tenant.
type SystemVerifierInterface interface {
	VerifySystem(ctx context.Context, tenant *types.TenantConfig, password string) error
}
