// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package config loads process configuration from defaults, an optional
// YAML file, ACCOUNTD_* environment variables, and command-line flags, in
// increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables read by Load.
// ACCOUNTD_SESSION_KEY maps to session.key, and so on.
const envPrefix = "ACCOUNTD_"

// Config is the complete process configuration.
type Config struct {
	// Listen is the HTTP API bind address.
	Listen string `koanf:"listen"`

	// Pepper is the server-wide password hashing secret. Required; the
	// serve command refuses to start without it.
	Pepper string `koanf:"pepper"`

	Metrics  MetricsConfig  `koanf:"metrics"`
	Database DatabaseConfig `koanf:"database"`
	Domain   DomainConfig   `koanf:"domain"`
	Session  SessionConfig  `koanf:"session"`
	Log      LogConfig      `koanf:"log"`
	SMTP     SMTPConfig     `koanf:"smtp"`
}

// MetricsConfig configures the observability HTTP server.
type MetricsConfig struct {
	Listen string `koanf:"listen"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// DomainConfig names the externally reachable base URL used in
// confirmation links.
type DomainConfig struct {
	URL string `koanf:"url"`
}

// SessionConfig configures session token signing.
type SessionConfig struct {
	// Key signs session tokens. Must be stable across restarts wherever
	// existing sessions have to stay valid.
	Key string        `koanf:"key"`
	TTL time.Duration `koanf:"ttl"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SMTPConfig configures the outbound mail relay. An empty host selects the
// null sender.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

func defaults() *Config {
	return &Config{
		Listen: ":3000",
		Metrics: MetricsConfig{
			Listen: ":9090",
		},
		Domain: DomainConfig{
			URL: "http://localhost:3000",
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

// Load builds the configuration. path may be empty (no file); flags may be
// nil (no flag overrides).
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	return cfg, nil
}

// Validate checks the invariants the serve command depends on. Secrets are
// verified here, once, at startup - a missing pepper or signing key must
// never surface as a per-request failure.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if c.Pepper == "" {
		return oops.Code("CONFIG_INVALID").Errorf("pepper is required")
	}
	if len(c.Session.Key) < 32 {
		return oops.Code("CONFIG_INVALID").Errorf("session.key must be at least 32 bytes")
	}
	if c.Session.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.ttl must be positive")
	}
	return nil
}

// MailConfigured reports whether an SMTP relay is configured.
func (c *Config) MailConfigured() bool {
	return c.SMTP.Host != ""
}
