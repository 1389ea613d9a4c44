package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
	Catalog    config.CatalogConfig  `koanf:"catalog"`
	Session    config.SessionConfig  `koanf:"session"`
	Storage    config.StorageConfig  `koanf:"storage"`
}

// Defaults returns the built-in configuration values. The session
// signing secret deliberately has no default.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "120s",
		"server.timeout.readHeader": "5s",
		"log.level":                 "info",
		"pprof.enabled":             false,
		"pprof.addr":                ":6060",
		"shutdown.timeout":          "10s",
		"catalog.baseUrl":           "https://fakestoreapi.com",
		"catalog.timeout":           "10s",
		"session.ttl":               "24h",
	}
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- External Services ---\n")
	b.WriteString(fmt.Sprintf("  catalog.baseUrl: %s\n", c.Catalog.BaseURL))
	b.WriteString(fmt.Sprintf("  catalog.timeout: %s\n", c.Catalog.Timeout))

	b.WriteString("\n--- Session & Storage ---\n")
	b.WriteString(c.Session.String())
	b.WriteString(c.Storage.String())

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}

	return nil
}
