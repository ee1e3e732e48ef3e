// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	logger := NewLogger("DEBUG")
	if logger.Security() == nil {
		t.Fatal("expected security logger")
	}
	logger.Security().AuthnSuccess("t@x.com", "system")
}

func TestInvalidLevel(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on invalid level")
		}
	}()
	NewLogger("invalid")
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()
	logger.Infof("hello %s", "world")
	logger.Security().AuthnFailure("admin", "pelada", "invalid_credentials")
	logger.Security().Logout("admin", "pelada")
}
