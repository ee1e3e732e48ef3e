// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/pelada-admin/internal/logging"
	"github.com/canonical/pelada-admin/internal/monitoring"
	"github.com/canonical/pelada-admin/internal/tracing"
)

var _ VerifierInterface = (*BcryptVerifier)(nil)

type BcryptVerifier struct {
	cost int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Verify fails with ErrMismatch unless stored is the bcrypt hash of claimed.
// Stored values that are not bcrypt hashes never match.
func (v *BcryptVerifier) Verify(ctx context.Context, stored, claimed string) error {
	_, span := v.tracer.Start(ctx, "credentials.BcryptVerifier.Verify")
	defer span.End()

	if stored == "" {
		return ErrNoStoredCredential
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(claimed))
	if err == nil {
		return nil
	}

	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		v.logger.Warnf("stored credential is not a valid bcrypt hash: %v", err)
	}

	return ErrMismatch
}

func (v *BcryptVerifier) Hash(ctx context.Context, secret string) (string, error) {
	_, span := v.tracer.Start(ctx, "credentials.BcryptVerifier.Hash")
	defer span.End()

	return hash(secret, v.cost)
}

// HashPassword hashes secret with the default cost.
func HashPassword(secret string) (string, error) {
	return hash(secret, bcrypt.DefaultCost)
}

func hash(secret string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(h), nil
}

// NewBcryptVerifier uses bcrypt.DefaultCost when cost is 0.
func NewBcryptVerifier(cost int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *BcryptVerifier {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	v := new(BcryptVerifier)
	v.cost = cost

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
