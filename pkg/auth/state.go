// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"encoding/json"

	"github.com/canonical/pelada-admin/internal/types"
)

type Tier int

const (
	Anonymous Tier = iota
	SystemAuthenticated
	FullyAuthenticated
)

func (t Tier) String() string {
	switch t {
	case SystemAuthenticated:
		return "system_authenticated"
	case FullyAuthenticated:
		return "fully_authenticated"
	default:
		return "anonymous"
	}
}

// State is the authentication state of a browser session. A pelada user only
// exists next to the tenant it belongs to, the zero value is Anonymous.
type State struct {
	tier   Tier
	tenant *types.TenantConfig
	user   *types.PeladaUser
}

func AnonymousState() State {
	return State{}
}

func SystemState(tenant *types.TenantConfig) State {
	if tenant == nil {
		return AnonymousState()
	}
	return State{tier: SystemAuthenticated, tenant: tenant.Snapshot()}
}

func FullState(tenant *types.TenantConfig, user *types.PeladaUser) State {
	if user == nil {
		return SystemState(tenant)
	}

	if tenant == nil {
		return AnonymousState()
	}

	u := *user
	return State{tier: FullyAuthenticated, tenant: tenant.Snapshot(), user: &u}
}

func (s State) Tier() Tier {
	return s.tier
}

// Tenant is nil when Anonymous.
func (s State) Tenant() *types.TenantConfig {
	if s.tenant == nil {
		return nil
	}
	t := *s.tenant
	return &t
}

// User is nil unless FullyAuthenticated.
func (s State) User() *types.PeladaUser {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s State) TenantEmail() string {
	if s.tenant == nil {
		return ""
	}
	return s.tenant.Email
}

func (s State) IsSystemAuthenticated() bool {
	return s.tier >= SystemAuthenticated
}

func (s State) IsFullyAuthenticated() bool {
	return s.tier == FullyAuthenticated
}

type stateView struct {
	Tier   string              `json:"tier"`
	Tenant *types.TenantConfig `json:"tenant,omitempty"`
	User   *userView           `json:"user,omitempty"`
}

type userView struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s State) MarshalJSON() ([]byte, error) {
	v := stateView{Tier: s.tier.String(), Tenant: s.tenant}
	if s.user != nil {
		v.User = &userView{Username: s.user.Username, Role: s.user.Role}
	}
	return json.Marshal(v)
}
