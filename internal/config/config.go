// Package config defines the link service configuration and its command line flags
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
)

const (
	flagClientID    = "client-id"
	flagSecret      = "secret"
	flagEnvironment = "environment"
	flagListenAddr  = "listen-addr"
	flagDataDir     = "data-dir"
	flagLogLevel    = "log-level"
)

// Config holds everything needed to run the link service
type Config struct {
	ClientID    string
	Secret      string
	Environment string
	ListenAddr  string
	// DataDir holds the exchange audit store. Empty keeps it in memory.
	DataDir  string
	LogLevel string
}

// Flags returns the command line flags, each also settable through an environment variable
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagClientID,
			Usage:   "Plaid client ID",
			EnvVars: []string{"PLAID_CLIENT_ID"},
		},
		&cli.StringFlag{
			Name:    flagSecret,
			Usage:   "Plaid API secret",
			EnvVars: []string{"PLAID_SECRET"},
		},
		&cli.StringFlag{
			Name:    flagEnvironment,
			Aliases: []string{"e"},
			Value:   string(entity.DefaultEnvironment),
			Usage:   "Plaid environment: sandbox, development or production",
			EnvVars: []string{"PLAID_ENV"},
		},
		&cli.StringFlag{
			Name:    flagListenAddr,
			Value:   ":8080",
			Usage:   "address the HTTP server listens on",
			EnvVars: []string{"LISTEN_ADDR"},
		},
		&cli.StringFlag{
			Name:    flagDataDir,
			Value:   "data",
			Usage:   "directory for the exchange audit store, empty for in-memory",
			EnvVars: []string{"DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Value:   "info",
			Usage:   "log level: debug, info, warn, error",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}
}

// FromContext builds a Config from parsed flags
func FromContext(c *cli.Context) Config {
	return Config{
		ClientID:    strings.TrimSpace(c.String(flagClientID)),
		Secret:      strings.TrimSpace(c.String(flagSecret)),
		Environment: strings.TrimSpace(c.String(flagEnvironment)),
		ListenAddr:  c.String(flagListenAddr),
		DataDir:     c.String(flagDataDir),
		LogLevel:    c.String(flagLogLevel),
	}
}

// Validate reports the first configuration problem found
func (c Config) Validate() error {
	if c.ClientID == "" {
		return errors.New("plaid client id is required (--client-id or PLAID_CLIENT_ID)")
	}
	if c.Secret == "" {
		return errors.New("plaid secret is required (--secret or PLAID_SECRET)")
	}
	if _, err := entity.ParseEnvironment(c.Environment); err != nil {
		return errors.Wrap(err, "invalid plaid environment")
	}
	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}
