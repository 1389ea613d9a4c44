package config

import (
	"fmt"
	"strings"
)

// StorageConfig configures the on-device persistence adapter.
// An empty directory disables persistence entirely.
type StorageConfig struct {
	Dir string `koanf:"dir"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	dir := c.Dir
	if dir == "" {
		dir = "<disabled>"
	}
	b.WriteString(fmt.Sprintf("  dir: %s\n", dir))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	return nil
}
