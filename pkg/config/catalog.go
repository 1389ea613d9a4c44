package config

import (
	"fmt"
	"strings"
	"time"
)

type CatalogConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  baseUrl: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("catalog base URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid catalog client timeout: %v", c.Timeout)
	}
	return nil
}
