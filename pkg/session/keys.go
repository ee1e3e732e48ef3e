// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"fmt"

	"github.com/canonical/pelada-admin/internal/types"
)

const keyPrefix = "peladm"

// Purpose tells what a persisted entry holds.
type Purpose string

const (
	PurposeCurrentClient Purpose = "current_client"
	PurposeSystemAuth    Purpose = "system_auth"
	PurposePeladaUser    Purpose = "pelada_user"
	PurposePeladaAuth    Purpose = "pelada_auth"
)

// Key identifies a persisted entry, Tenant is empty for the system tier entries.
type Key struct {
	Purpose Purpose
	Tenant  string
}

func (k Key) String() string {
	if k.Tenant == "" {
		return fmt.Sprintf("%s_%s", keyPrefix, k.Purpose)
	}
	return fmt.Sprintf("%s_%s_%s", keyPrefix, k.Purpose, k.Tenant)
}

func CurrentClientKey() Key {
	return Key{Purpose: PurposeCurrentClient}
}

func SystemAuthKey() Key {
	return Key{Purpose: PurposeSystemAuth}
}

func PeladaUserKey(tenantEmail string) Key {
	return Key{Purpose: PurposePeladaUser, Tenant: types.NormalizeEmail(tenantEmail)}
}

func PeladaAuthKey(tenantEmail string) Key {
	return Key{Purpose: PurposePeladaAuth, Tenant: types.NormalizeEmail(tenantEmail)}
}

// TenantKeys returns every key scoped to the tenant.
func TenantKeys(tenantEmail string) []Key {
	return []Key{PeladaUserKey(tenantEmail), PeladaAuthKey(tenantEmail)}
}
