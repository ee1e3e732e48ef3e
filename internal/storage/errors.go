// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("client not found")

	// ErrCheckViolation is returned when the clients table rejects a row,
	// e.g. a status outside the allowed set or an empty email.
	ErrCheckViolation = errors.New("client rejected by table constraints")
)

const (
	pgErrCodeNotNullViolation = "23502"
	pgErrCodeCheckViolation   = "23514"
)

// IsCheckViolation reports whether err is a constraint violation raised by
// the clients table on write.
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgErrCodeCheckViolation || pgErr.Code == pgErrCodeNotNullViolation
}
