// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package backend

import (
	"context"
)

// ClientInterface is a handle bound to the backend project of one tenant.
type ClientInterface interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, rows ...Row) error
	// Upsert inserts rows, updating the existing ones that collide on the onConflict column.
	Upsert(ctx context.Context, table, onConflict string, rows ...Row) error
	// Exec runs a raw statement block, only used to bootstrap a tenant schema.
	Exec(ctx context.Context, statement string) error
	Close()
}
