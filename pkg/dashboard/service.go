// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/canonical/pelada-admin/internal/backend"
	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

var DefaultTables = []string{"peladas", "players", "matches"}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	tables []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Counts queries every table concurrently.
func (s *Service) Counts(ctx context.Context, conn backend.ClientInterface) (*Counts, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.Service.Counts")
	defer span.End()

	counts := &Counts{Tables: make(map[string]int, len(s.tables))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, table := range s.tables {
		g.Go(func() error {
			rows, err := conn.Select(gctx, table, backend.Query{})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case errors.Is(err, backend.ErrNotFound):
				counts.Tables[table] = 0
				counts.Missing = append(counts.Missing, table)
				return nil
			case err != nil:
				return fmt.Errorf("failed to count %s: %w", table, err)
			}

			counts.Tables[table] = len(rows)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(counts.Missing)

	if len(counts.Missing) > 0 {
		s.logger.Warnf("tables missing from tenant backend: %v", counts.Missing)
	}

	return counts, nil
}

func NewService(tables []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.tables = tables
	if len(s.tables) == 0 {
		s.tables = DefaultTables
	}

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
