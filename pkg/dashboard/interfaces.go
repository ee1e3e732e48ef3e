// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package dashboard

import (
	"context"

	"github.com/canonical/pelada-admin/internal/backend"
)

type ServiceInterface interface {
	Counts(ctx context.Context, conn backend.ClientInterface) (*Counts, error)
}
