// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

const (
	// DefaultCookieName is the cookie carrying the browser session id
	DefaultCookieName = "peladm_sid"
)

type sessionIDKey struct{}

type Config struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Middleware makes sure every request belongs to a browser session, issuing a
// new session id cookie when the request carries none or a malformed one.
type Middleware struct {
	cookieName string
	ttl        time.Duration
	secure     bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		sid, ok := m.sessionID(r)
		if !ok {
			id, err := uuid.NewV7()
			if err != nil {
				m.logger.Errorf("failed to generate session id: %v", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			sid = id.String()
			http.SetCookie(w, m.cookie(sid))
		}

		next.ServeHTTP(w, r.WithContext(WithSessionID(ctx, sid)))
	})
}

func (m *Middleware) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return "", false
	}

	id, err := uuid.Parse(c.Value)
	if err != nil {
		m.logger.Debugf("ignoring malformed session cookie")
		return "", false
	}

	return id.String(), true
}

func (m *Middleware) cookie(sid string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey{}).(string)
	return sid, ok && sid != ""
}

func NewMiddleware(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.cookieName = cfg.CookieName
	if m.cookieName == "" {
		m.cookieName = DefaultCookieName
	}
	m.ttl = cfg.TTL
	m.secure = cfg.Secure

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
