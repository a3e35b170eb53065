package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bumbitzu/cheatsheet/internal/flagx"
	"github.com/bumbitzu/cheatsheet/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so they may be written as "5s" or as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	AuthTimeout      timex.Duration `json:"auth_timeout"`
	BcryptCost       int            `json:"bcrypt_cost"`
	LogLevel         string         `json:"log_level"`
	SecureCookie     *bool          `json:"secure_cookie"`
}

// parseJson overlays cfg with the file given by -c or -config. Keys that are
// absent from the file leave the current value untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if c.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.SessionTTL.Duration != 0 {
		cfg.SessionTTL = c.SessionTTL.Duration
	}
	if c.AuthTimeout.Duration != 0 {
		cfg.AuthTimeout = c.AuthTimeout.Duration
	}
	if c.BcryptCost != 0 {
		cfg.BcryptCost = c.BcryptCost
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.SecureCookie != nil {
		cfg.SecureCookie = *c.SecureCookie
	}
	return nil
}
