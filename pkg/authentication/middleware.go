// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/canonical/pelada-admin/internal/http/types"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const tierAdmin = "admin"

type Middleware struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found {
				_ = types.WriteError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}

			operator, err := m.verifier.VerifyToken(ctx, token)
			switch {
			case errors.Is(err, ErrForbidden), errors.Is(err, ErrNoAccessPolicy):
				// the verifier already reported the authorization failure
				_ = types.WriteError(w, http.StatusForbidden, "forbidden", "token not allowed on the admin API")
				return
			case err != nil:
				m.logger.Debugf("admin token rejected: %v", err)
				m.logger.Security().AuthnFailure(r.RemoteAddr, tierAdmin, "invalid token")
				_ = types.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperator(ctx, operator)))
		})
	}
}

// getBearerToken only accepts the RFC 6750 "Bearer <token>" form.
func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	token, ok := strings.CutPrefix(headers.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}

	return token, true
}

func NewMiddleware(verifier TokenVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.verifier = verifier

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
