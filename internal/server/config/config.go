// Package config handles configuration for the login server: defaults, an
// optional JSON file, CHEATSHEET_* environment variables and command-line
// flags, applied in that order so that later sources win.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the login server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP host.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory user store.
//   - SecretKey: HMAC secret for signing the session cookie (HS256).
//   - SessionTTL: lifetime of the session cookie.
//   - AuthTimeout: deadline applied around each user lookup and hash comparison.
//   - BcryptCost: work factor used when hashing new passwords.
//   - LogLevel: debug, info, warn or error.
//   - SecureCookie: mark the session cookie Secure (HTTPS only).
type Config struct {
	EndpointAddrHTTP string        `env:"HTTP_ADDR"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	SecretKey        string        `env:"SECRET_KEY"`
	SessionTTL       time.Duration `env:"SESSION_TTL"`
	AuthTimeout      time.Duration `env:"AUTH_TIMEOUT"`
	BcryptCost       int           `env:"BCRYPT_COST"`
	LogLevel         string        `env:"LOG_LEVEL"`
	SecureCookie     bool          `env:"SECURE_COOKIE"`
}

// DefaultSecretKey is the development cookie secret set by LoadDefaults.
const DefaultSecretKey = "secretKey"

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.SessionTTL = 24 * time.Hour
	c.AuthTimeout = 5 * time.Second
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.SecureCookie = false
}

// LoadConfig builds a Config from defaults, the JSON file named by -c/-config,
// the environment and finally the command-line flags.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("config: secret key must not be empty")
	}
	if c.AuthTimeout <= 0 {
		return fmt.Errorf("config: auth timeout must be positive, got %s", c.AuthTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// UsesDefaultSecret reports whether the cookie secret was never overridden.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}
