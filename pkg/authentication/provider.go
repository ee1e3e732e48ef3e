// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

var verifierConfig = &oidc.Config{SkipClientIDCheck: true}

// NewProvider discovers the issuer through its well-known configuration.
func NewProvider(ctx context.Context, issuer string) (*oidc.Provider, error) {
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC issuer %s: %w", issuer, err)
	}

	return provider, nil
}

// NewJWKSVerifier skips discovery and fetches signing keys from jwksURL.
func NewJWKSVerifier(ctx context.Context, issuer, jwksURL string) *oidc.IDTokenVerifier {
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	return oidc.NewVerifier(issuer, oidc.NewRemoteKeySet(ctx, jwksURL), verifierConfig)
}
