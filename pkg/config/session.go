package config

import (
	"fmt"
	"strings"
	"time"
)

type SessionConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// String returns a string representation of the session configuration.
// The signing secret is never printed.
func (c *SessionConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Session ---\n")
	b.WriteString(fmt.Sprintf("  secret: %s\n", maskSecret(c.Secret)))
	b.WriteString(fmt.Sprintf("  ttl: %s\n", c.TTL))
	return b.String()
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not configured>"
	}
	return "****"
}

func (c *SessionConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("session signing secret is not configured")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("invalid session TTL: %v", c.TTL)
	}
	return nil
}
