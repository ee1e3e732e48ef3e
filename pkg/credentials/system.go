// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"fmt"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/types"
)

const (
	ModePassword  = "password"
	ModeAcceptAny = "accept_any"
)

// PasswordSystemVerifier checks the password against the tenant system password hash.
type PasswordSystemVerifier struct {
	verifier VerifierInterface
}

func (v *PasswordSystemVerifier) VerifySystem(ctx context.Context, tenant *types.TenantConfig, password string) error {
	return v.verifier.Verify(ctx, tenant.SystemPasswordHash, password)
}

func NewPasswordSystemVerifier(verifier VerifierInterface) *PasswordSystemVerifier {
	return &PasswordSystemVerifier{verifier: verifier}
}

// AcceptAnySystemVerifier opens the system tier of any tenant with any password.
// Only meant for demos and tests.
type AcceptAnySystemVerifier struct{}

func (AcceptAnySystemVerifier) VerifySystem(context.Context, *types.TenantConfig, string) error {
	return nil
}

// NewSystemVerifier builds the verifier configured by mode.
func NewSystemVerifier(mode string, verifier VerifierInterface, logger logging.LoggerInterface) (SystemVerifierInterface, error) {
	switch mode {
	case ModePassword, "":
		return NewPasswordSystemVerifier(verifier), nil
	case ModeAcceptAny:
		logger.Warn("system login accepts any password, do not use this mode in production")
		return AcceptAnySystemVerifier{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}
