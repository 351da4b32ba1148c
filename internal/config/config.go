package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides, e.g. MINITUT_TOC_STYLE.
const EnvPrefix = "MINITUT_"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "minitut.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MINITUT_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
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

var validTOCStyles = map[TOCStyle]bool{
	TOCPermanent: true,
	TOCHamburger: true,
}

var validTOCLists = map[TOCList]bool{
	ListOrdered:   true,
	ListUnordered: true,
	ListNone:      true,
}

var validLogFormats = map[LogFormat]bool{
	LogConsole: true,
	LogJSON:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Document == "" {
		return fmt.Errorf("document is required")
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if !validTOCStyles[c.TOCStyle] {
		return fmt.Errorf("invalid toc_style %q: must be one of permanent, hamburger", c.TOCStyle)
	}
	if !validTOCLists[c.TOCList] {
		return fmt.Errorf("invalid toc_list %q: must be one of ol, ul, none", c.TOCList)
	}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be one of console, json", c.LogFormat)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative")
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch_retries must be non-negative")
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent_fetch must be non-negative")
	}
	return nil
}
