// Package config loads CLI configuration from TRIDION_* environment
// variables. Command-line flags override whatever is loaded here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the environment-backed configuration of the CLI.
type Env struct {
	// Endpoint is the full Core Service endpoint URL.
	Endpoint string `env:"TRIDION_ENDPOINT"`

	// Username and Password authenticate against the Content Manager.
	Username string `env:"TRIDION_USERNAME"`
	Password string `env:"TRIDION_PASSWORD"`

	// Domain is the Windows domain for NTLM authentication.
	Domain string `env:"TRIDION_DOMAIN"`

	// Auth selects the mechanism: basic, ntlm, or negotiate.
	Auth string `env:"TRIDION_AUTH" envDefault:"basic"`

	// Version is the server API version, e.g. "2013-sp1" or "web-8.5".
	Version string `env:"TRIDION_VERSION" envDefault:"web-8.5"`

	// SPN and Realm configure Kerberos for negotiate auth.
	SPN   string `env:"TRIDION_SPN"`
	Realm string `env:"TRIDION_REALM"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `env:"TRIDION_TIMEOUT" envDefault:"60s"`

	// Insecure skips TLS certificate verification.
	Insecure bool `env:"TRIDION_INSECURE"`

	// LogFile, when set, receives debug logs (rotated at 5 MB).
	LogFile string `env:"TRIDION_LOG_FILE"`
}

// Load parses the environment into an Env.
func Load() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &e, nil
}
