// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import "errors"

var (
	ErrMismatch           = errors.New("credential mismatch")
	ErrNoStoredCredential = errors.New("no stored credential")
	ErrUnknownMode        = errors.New("unknown verification mode")
)
