// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

type Config struct {
	Enabled bool
	Issuer  string
	JWKSURL string
	Policy  Policy
}

// NewAuthenticator builds the verifier guarding the client administration API.
func NewAuthenticator(
	ctx context.Context,
	cfg Config,
	provider ProviderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if !cfg.Enabled {
		logger.Warn("admin API authentication is disabled")
		return NewNoopVerifier(), nil
	}

	if cfg.Issuer == "" {
		return nil, fmt.Errorf("issuer is required for admin authentication")
	}

	if cfg.JWKSURL != "" {
		logger.Infof("using JWKS %s for admin tokens", cfg.JWKSURL)
		return NewJWTVerifier(NewJWKSVerifier(ctx, cfg.Issuer, cfg.JWKSURL), cfg.Policy, tracer, monitor, logger), nil
	}

	if provider == nil {
		p, err := NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	logger.Infof("using OIDC discovery of %s for admin tokens", cfg.Issuer)
	return NewJWTVerifier(provider.Verifier(verifierConfig), cfg.Policy, tracer, monitor, logger), nil
}
