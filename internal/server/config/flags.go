package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/bumbitzu/cheatsheet/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-w", "-b", "-l"}

// parseFlags overlays cfg with command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; empty selects the in-memory store
//	-s string   session cookie HMAC secret
//	-t int      session lifetime, minutes
//	-w duration deadline around user lookup and hash comparison (e.g., "3s")
//	-b int      bcrypt cost for new passwords
//	-l string   log level
//
// Arguments are first narrowed with flagx.FilterArgs so that -c/-config and
// flags meant for other components do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	sessionTTL := fs.Int("t", int(cfg.SessionTTL.Minutes()), "session ttl (in minutes)")
	fs.DurationVar(&cfg.AuthTimeout, "w", cfg.AuthTimeout, "auth timeout")
	fs.IntVar(&cfg.BcryptCost, "b", cfg.BcryptCost, "bcrypt cost")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("config: parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
	return nil
}
