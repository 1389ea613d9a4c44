package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Load builds the configuration for the named application by layering, in
// order of increasing priority: built-in defaults, config.yaml, a local
// .env file and system environment variables prefixed with <APP>_.
func Load[T Validator](appName string, defaults map[string]any) (T, error) {
	var cfg T
	// Create a new Koanf instance
	k := koanf.New(".")

	configFile := "config.yaml"
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(appName))

	// 1. Load built-in defaults, the lowest priority
	if len(defaults) > 0 {
		if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
			log.Printf("WARN: error loading default config values: %v", err)
		}
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
		}
	}

	// 3. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if envFileMap, err := godotenv.Read(".env"); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[envTransformer(key)] = value
		}
		// Load the envMap into Koanf
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 5. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
