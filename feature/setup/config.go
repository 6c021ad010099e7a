package setup

import "time"

// Config holds configuration for the setup orchestrator.
type Config struct {
	// ConfirmTimeoutSeconds is how long the overwrite prompt waits for an answer.
	ConfirmTimeoutSeconds int `mapstructure:"confirm_timeout_seconds" default:"60"`
}

// ConfirmTimeout returns the gate timeout, 60 seconds when unset.
func (c Config) ConfirmTimeout() time.Duration {
	if c.ConfirmTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.ConfirmTimeoutSeconds) * time.Second
}
