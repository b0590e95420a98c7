package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	var cfg Config
	app := &cli.App{
		Name:  "test",
		Flags: Flags(),
		Action: func(c *cli.Context) error {
			cfg = FromContext(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	return cfg
}

func TestFlagsDefaults(t *testing.T) {
	cfg := parse(t)

	assert.Equal(t, "sandbox", cfg.Environment)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFlagsFromArgsAndEnv(t *testing.T) {
	t.Setenv("PLAID_CLIENT_ID", "env-client")
	t.Setenv("PLAID_SECRET", "env-secret")
	t.Setenv("PLAID_ENV", "development")

	cfg := parse(t, "--secret", " flag-secret ", "--data-dir", "", "-e", "production")

	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "flag-secret", cfg.Secret)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "", cfg.DataDir)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		ClientID:    "id",
		Secret:      "secret",
		Environment: "sandbox",
		ListenAddr:  ":8080",
		LogLevel:    "debug",
	}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(*Config){
		"client id":   func(c *Config) { c.ClientID = "" },
		"secret":      func(c *Config) { c.Secret = "" },
		"environment": func(c *Config) { c.Environment = "gibberish" },
		"listen":      func(c *Config) { c.ListenAddr = "" },
		"log level":   func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	empty := valid
	empty.Environment = ""
	assert.NoError(t, empty.Validate(), "empty environment falls back to sandbox")
}
