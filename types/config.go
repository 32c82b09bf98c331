// Package types holds configuration types for nmind.yaml.
package types

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "nmind.yaml"

// Config represents the top-level nmind.yaml configuration.
type Config struct {
	Dataset string       `yaml:"dataset,omitempty"` // empty = embedded dataset
	Log     LogConfig    `yaml:"log,omitempty"`
	Server  ServerConfig `yaml:"server,omitempty"`
	Output  OutputConfig `yaml:"output,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console, json
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string `yaml:"addr,omitempty"`
	CORSOrigin string `yaml:"cors_origin,omitempty"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // text, json
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:4300"
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

// ParseConfig parses raw YAML bytes into a Config with defaults applied.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing nmind config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfig reads path and applies environment overrides (NMIND_DATASET,
// NMIND_LOG_LEVEL). A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	var cfg *Config
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		cfg, err = ParseConfig(data)
		if err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("NMIND_DATASET"); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv("NMIND_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}
