// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import "errors"

var (
	ErrNotSystemAuthenticated = errors.New("system login required")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	// ErrStorageCorrupt marks persisted session entries that cannot be parsed, it never leaves Restore.
	ErrStorageCorrupt = errors.New("persisted session is corrupt")
	ErrMissingSession = errors.New("missing browser session")
)
