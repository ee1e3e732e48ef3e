// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import "errors"

var ErrMissingSessionID = errors.New("missing session id")
