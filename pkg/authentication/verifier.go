// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const adminResource = "client_admin_api"

var (
	ErrNoAccessPolicy = errors.New("no admin access policy configured")
	ErrForbidden      = errors.New("subject not allowed and required scope missing")
)

type claims struct {
	Subject string   `json:"sub"`
	Scope   string   `json:"scope"`
	Scopes  []string `json:"scp"`
}

func (c claims) hasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope) || slices.Contains(c.Scopes, scope)
}

// Policy grants access to tokens whose subject is listed or that carry the required scope.
type Policy struct {
	AllowedSubjects []string
	RequiredScope   string
}

func (p Policy) authorize(c claims) error {
	if len(p.AllowedSubjects) == 0 && p.RequiredScope == "" {
		return ErrNoAccessPolicy
	}

	if slices.Contains(p.AllowedSubjects, c.Subject) {
		return nil
	}

	if p.RequiredScope != "" && c.hasScope(p.RequiredScope) {
		return nil
	}

	return ErrForbidden
}

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   Policy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", err
	}

	c := claims{}
	if err := token.Claims(&c); err != nil {
		v.logger.Debugf("failed to extract claims: %v", err)
		return "", err
	}

	if err := v.policy.authorize(c); err != nil {
		v.logger.Security().AuthzFailure(c.Subject, adminResource)
		return "", err
	}

	return c.Subject, nil
}

func NewJWTVerifier(
	verifier *oidc.IDTokenVerifier,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	v := new(JWTVerifier)

	v.verifier = verifier
	v.policy = policy

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
