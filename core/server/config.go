package server

import (
	"fmt"
	"strconv"
	"time"
)

// holdMargin is added on top of the longest request hold when bounding writes.
const holdMargin = 15 * time.Second

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
	// WriteTimeoutSeconds bounds a response write. 0 disables the bound.
	// Setup requests wait for the confirmation prompt, so any value is raised above that wait.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"0"`
}

// Validate checks the listen port.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid server port %q: %w", c.Port, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("server port %d out of range", port)
	}
	return nil
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// WriteTimeout returns the configured write bound, raised so a request held for hold
// can still answer. It returns 0 when no bound is configured.
func (c Config) WriteTimeout(hold time.Duration) time.Duration {
	if c.WriteTimeoutSeconds <= 0 {
		return 0
	}
	configured := time.Duration(c.WriteTimeoutSeconds) * time.Second
	if minimum := hold + holdMargin; configured < minimum {
		return minimum
	}
	return configured
}
