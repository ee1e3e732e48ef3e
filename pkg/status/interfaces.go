// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// CheckerInterface is a dependency the service needs to be ready, such as the
// control plane database or the session store.
type CheckerInterface interface {
	Ping(context.Context) error
}
