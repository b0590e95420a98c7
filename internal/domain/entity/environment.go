package entity

import (
	"fmt"
)

// Environment names one of the isolated Plaid API deployments
type Environment string

const (
	Sandbox     Environment = "sandbox"
	Development Environment = "development"
	Production  Environment = "production"

	// DefaultEnvironment is used when no environment is configured
	DefaultEnvironment = Sandbox
)

var environmentHosts = map[Environment]string{
	Sandbox:     "https://sandbox.plaid.com/",
	Development: "https://development.plaid.com/",
	Production:  "https://production.plaid.com/",
}

// Environments returns the known environments in a stable order
func Environments() []Environment {
	return []Environment{Sandbox, Development, Production}
}

// ParseEnvironment resolves an environment name. An empty name resolves to DefaultEnvironment.
func ParseEnvironment(name string) (Environment, error) {
	if name == "" {
		return DefaultEnvironment, nil
	}

	env := Environment(name)
	if !env.Valid() {
		return "", fmt.Errorf("unknown environment %q: must be one of sandbox, development, production", name)
	}

	return env, nil
}

// Valid reports whether the environment is one of the known deployments
func (e Environment) Valid() bool {
	_, ok := environmentHosts[e]
	return ok
}

// Host returns the API host for the environment, always with a trailing slash.
// Unknown environments return an empty string.
func (e Environment) Host() string {
	return environmentHosts[e]
}

func (e Environment) String() string {
	return string(e)
}
