// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package dashboard

import (
	"github.com/canonical/pelada-admin/internal/types"
)

// Counts holds the number of rows per table. Tables the backend does not
// know about are listed in Missing, a hint that the schema was never bootstrapped.
type Counts struct {
	Tables  map[string]int `json:"tables"`
	Missing []string       `json:"missing,omitempty"`
}

type User struct {
	Username string         `json:"username"`
	Role     string         `json:"role"`
	Record   map[string]any `json:"record,omitempty"`
}

type Summary struct {
	Tenant *types.TenantConfig `json:"tenant"`
	User   *User               `json:"user"`
	Counts *Counts             `json:"counts"`
}
