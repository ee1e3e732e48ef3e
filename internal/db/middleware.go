// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/pelada-admin/internal/logging"
)

// TransactionMiddleware runs every mutating request in one transaction,
// committed only when the handler answers below 400.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			err := db.WithTx(r.Context(), func(ctx context.Context) error {
				ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

				next.ServeHTTP(ww, r.WithContext(ctx))

				if status := ww.Status(); status >= http.StatusBadRequest {
					return fmt.Errorf("handler answered %d", status)
				}

				return nil
			})
			if err != nil {
				logger.Debugf("transaction for %s %s not committed: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}
