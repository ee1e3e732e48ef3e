// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint   string  `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint   string  `envconfig:"otel_http_endpoint"`
	TracingEnabled     bool    `envconfig:"tracing_enabled" default:"true"`
	TracingSampleRatio float64 `envconfig:"tracing_sample_ratio" default:"1"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	// RegistryBackend selects where tenant configurations live, "memory" or "postgres"
	RegistryBackend string `envconfig:"registry_backend" default:"memory"`
	ClientsFile     string `envconfig:"clients_file"`
	RegistryCacheMB int64  `envconfig:"registry_cache_mb" default:"16"`

	DSN string `envconfig:"DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// TenantDBMaxConns sizes the pools opened towards tenants served by the postgres driver
	TenantDBMaxConns int32 `envconfig:"tenant_db_max_conns" default:"4"`

	// SessionBackend selects the session state store, "memory" or "redis"
	SessionBackend   string        `envconfig:"session_backend" default:"memory"`
	RedisURL         string        `envconfig:"redis_url"`
	SessionTTL       time.Duration `envconfig:"session_ttl" default:"720h"`
	SessionCookie    string        `envconfig:"session_cookie" default:"peladm_sid"`
	SessionCookieTLS bool          `envconfig:"session_cookie_secure" default:"true"`

	// SystemLoginMode is "password" (bcrypt against the tenant system password hash)
	// or "accept_any", which never checks the password and only exists for demos and tests
	SystemLoginMode string `envconfig:"system_login_mode" default:"password"`

	BackendTimeout time.Duration `envconfig:"backend_timeout" default:"10s"`

	AdminAuthEnabled        bool     `envconfig:"admin_auth_enabled" default:"false"`
	AdminJWTIssuer          string   `envconfig:"admin_jwt_issuer"`
	AdminJWKSURL            string   `envconfig:"admin_jwks_url"`
	AdminJWTAllowedSubjects []string `envconfig:"admin_jwt_allowed_subjects"`
	AdminJWTRequiredScope   string   `envconfig:"admin_jwt_required_scope" default:"peladm:admin"`
}
