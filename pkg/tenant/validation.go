// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/pelada-admin/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// prepare returns a normalised copy of cfg ready to be stored.
func prepare(cfg *types.TenantConfig) (*types.TenantConfig, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: empty configuration", ErrInvalidTenant)
	}

	c := *cfg
	c.Email = types.NormalizeEmail(c.Email)
	if c.Status == "" {
		c.Status = types.TenantActive
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTenant, err)
	}

	return &c, nil
}
