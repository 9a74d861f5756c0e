package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCSADDON_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCSADDON_PORT -> port, etc.
	if err := k.Load(env.Provider("DOCSADDON_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOCSADDON_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DocsRoot == "" {
		return fmt.Errorf("docs_root is required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1-65535, got %d", c.Port)
	}

	if c.DefaultDocument == "" {
		return fmt.Errorf("default_document is required")
	}
	if strings.HasPrefix(c.DefaultDocument, "/") {
		return fmt.Errorf("default_document must be relative to docs_root")
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.IngressBaseURL != "" && !strings.HasPrefix(c.IngressBaseURL, "/") {
		return fmt.Errorf("ingress_base_url must start with /")
	}

	if c.Upload.MaxBodyMiB < 0 {
		return fmt.Errorf("upload.max_body_mib must be non-negative")
	}

	return nil
}
