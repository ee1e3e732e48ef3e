// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

type operatorKey struct{}

// WithOperator stores the subject of the admin token on ctx.
func WithOperator(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, operatorKey{}, subject)
}

func OperatorFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(operatorKey{}).(string)
	return subject, ok && subject != ""
}
