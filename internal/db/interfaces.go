// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(context.Context) sq.StatementBuilderType
	WithTx(context.Context, func(context.Context) error) error
	// ExecRaw runs a statement that cannot be expressed with the builder, such as a DDL block.
	ExecRaw(context.Context, string) error
	Ping(context.Context) error
	Close()
}
