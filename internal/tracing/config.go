// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/pelada-admin/internal/logging"
)

const defaultServiceName = "pelada-admin"

// Config selects the span exporter: OTLP gRPC wins over OTLP HTTP, stdout is
// used when neither endpoint is set.
type Config struct {
	ServiceName      string
	OtelHTTPEndpoint string
	OtelGRPCEndpoint string

	// SampleRatio applies to root spans only, children follow their parent.
	SampleRatio float64

	Logger logging.LoggerInterface

	Enabled bool
}

func NewConfig(enabled bool, otelGRPCEndpoint, otelHTTPEndpoint string, sampleRatio float64, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.ServiceName = defaultServiceName
	c.OtelGRPCEndpoint = otelGRPCEndpoint
	c.OtelHTTPEndpoint = otelHTTPEndpoint
	c.SampleRatio = sampleRatio
	c.Logger = logger
	c.Enabled = enabled

	return c
}

func NewNoopConfig() *Config {
	return &Config{ServiceName: defaultServiceName}
}
