// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

// TenantConfig binds a tenant login email to the backend project serving it.
// Key and SystemPasswordHash are secrets and never leave the process as JSON.
type TenantConfig struct {
	ID                 string       `json:"id" db:"id" koanf:"id"`
	Name               string       `json:"name" db:"name" koanf:"name" validate:"required"`
	Email              string       `json:"email" db:"email" koanf:"email" validate:"required,email"`
	URL                string       `json:"url" db:"url" koanf:"url" validate:"required,url"`
	Key                string       `json:"-" db:"key" koanf:"key"`
	ResponsibleName    string       `json:"responsible_name" db:"responsible_name" koanf:"responsible_name"`
	Phone              string       `json:"phone" db:"phone" koanf:"phone"`
	PeladaName         string       `json:"pelada_name" db:"pelada_name" koanf:"pelada_name"`
	Status             TenantStatus `json:"status" db:"status" koanf:"status" validate:"omitempty,oneof=active inactive suspended"`
	SystemPasswordHash string       `json:"-" db:"system_password_hash" koanf:"system_password_hash"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at" koanf:"-"`
}

func (t *TenantConfig) IsActive() bool {
	return t.Status == TenantActive
}

// Snapshot returns a copy stripped of secrets, safe to persist in session storage.
func (t *TenantConfig) Snapshot() *TenantConfig {
	s := *t
	s.Key = ""
	s.SystemPasswordHash = ""
	return &s
}

// PeladaUser is a row of a tenant users table, minus its credential column.
type PeladaUser struct {
	TenantEmail string         `json:"tenant_email"`
	Username    string         `json:"username"`
	Role        string         `json:"role"`
	Record      map[string]any `json:"record"`
}

// NormalizeEmail is the canonical form emails are stored and looked up with.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
