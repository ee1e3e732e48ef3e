// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package backend

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrUnreachable is returned when the backend could not be contacted or failed on its side.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrUnauthorized is returned when the backend rejected the tenant credentials.
	ErrUnauthorized = errors.New("backend rejected credentials")
	// ErrNotFound is returned when the queried relation does not exist.
	ErrNotFound = errors.New("backend relation not found")
	// ErrInvalidIdentifier is returned for table or column names that are not plain identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Row is a single record keyed by column name.
type Row map[string]any

// String returns the column as a string, or "" when absent or null.
func (r Row) String(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Filter is an equality predicate on a column.
type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

type Query struct {
	Filters []Filter
	// Limit caps the number of returned rows, 0 means no limit.
	Limit uint64
}

// ValidateIdentifiers checks table and column names before they reach a statement.
func ValidateIdentifiers(names ...string) error {
	for _, n := range names {
		if !identifierRegexp.MatchString(n) {
			return fmt.Errorf("%q: %w", n, ErrInvalidIdentifier)
		}
	}
	return nil
}
