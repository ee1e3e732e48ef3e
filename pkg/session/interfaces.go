// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
)

// BackendInterface is the raw key value store shared by every browser session.
type BackendInterface interface {
	Get(context.Context, string) (string, bool, error)
	Set(context.Context, string, string) error
	Delete(context.Context, ...string) error
}

// StoreInterface is the persisted state of a single browser session.
type StoreInterface interface {
	Get(context.Context, Key) (string, bool, error)
	Set(context.Context, Key, string) error
	Delete(context.Context, ...Key) error
}
