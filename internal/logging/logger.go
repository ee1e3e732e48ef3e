// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger is the application logger, a zap sugared logger with an attached security event logger.
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a JSON logger at the given level, panics on an unknown level
func NewLogger(l string) *Logger {
	level, err := zapcore.ParseLevel(strings.ToLower(l))
	if err != nil {
		panic(err)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.EncoderConfig.TimeKey = "@timestamp"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level == zapcore.DebugLevel {
		c.Development = true
	}

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: z.Sugar(),
		security:      &SecurityLogger{l: z.Named("security")},
	}
}
