// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	eventSystemStartup  = "sys_startup"
	eventSystemShutdown = "sys_shutdown"
	eventAuthnSuccess   = "authn_login_success"
	eventAuthnFailure   = "authn_login_fail"
	eventLogout         = "authn_logout"
	eventAuthzFailure   = "authz_fail"
	eventUserCreated    = "user_created"
)

// SecurityLogger writes events following the OWASP logging vocabulary.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", eventSystemStartup))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", eventSystemShutdown))
}

func (s *SecurityLogger) AuthnSuccess(subject, tier string) {
	s.l.Info(
		"login succeeded",
		zap.String("event", eventAuthnSuccess+":"+subject),
		zap.String("tier", tier),
	)
}

func (s *SecurityLogger) AuthnFailure(subject, tier, reason string) {
	s.l.Warn(
		"login failed",
		zap.String("event", eventAuthnFailure+":"+subject),
		zap.String("tier", tier),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) Logout(subject, tier string) {
	s.l.Info(
		"logout",
		zap.String("event", eventLogout+":"+subject),
		zap.String("tier", tier),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, resource string) {
	s.l.Warn(
		"authorization failed",
		zap.String("event", eventAuthzFailure+":"+subject+","+resource),
	)
}

func (s *SecurityLogger) UserCreated(actor, username, role string) {
	s.l.Info(
		"user created",
		zap.String("event", eventUserCreated+":"+actor+","+username),
		zap.String("role", role),
	)
}
