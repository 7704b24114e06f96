// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by [Load].
const (
	EnvConfigFile = "VERIBITS_CONFIG_FILE"
	EnvAPIURL     = "VERIBITS_API_URL"
	EnvAPIKey     = "VERIBITS_API_KEY"
	EnvTimeout    = "VERIBITS_TIMEOUT"
	EnvLogFormat  = "VERIBITS_LOG_FORMAT"
)

// Defaults.
const (
	DefaultAPIURL         = "https://veribits.com/api/v1"
	DefaultTimeoutSeconds = 30
	DefaultBundler        = "openssl"
	DefaultMigrator       = "keytool"
	DefaultAlias          = "mycert"
	DefaultLogFormat      = "text"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config is the effective veribits configuration.
type Config struct {
	// API: VeriBits REST API client settings
	API struct {
		// URL: Base URL including the version prefix
		URL string `json:"url" yaml:"url"`
		// Key: Bearer token sent when non-empty (can also be set via VERIBITS_API_KEY)
		Key string `json:"key,omitempty" yaml:"key,omitempty"`
		// TimeoutSeconds: Per-request timeout
		TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// UserAgent: Overrides the default User-Agent header
		UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	} `json:"api" yaml:"api"`

	// Keystore: Local certificate conversion settings
	Keystore struct {
		// Bundler: Executable that produces PKCS12 bundles
		Bundler string `json:"bundler" yaml:"bundler"`
		// Migrator: Executable that imports PKCS12 into JKS
		Migrator string `json:"migrator" yaml:"migrator"`
		// DefaultAlias: Alias used when --alias is not given
		DefaultAlias string `json:"defaultAlias" yaml:"defaultAlias"`
	} `json:"keystore" yaml:"keystore"`

	// Log: Diagnostic logging
	Log struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format"`
	} `json:"log" yaml:"log"`

	// Source is the file the configuration was read from, empty for none.
	Source string `json:"-" yaml:"-"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	c := &Config{}
	c.API.URL = DefaultAPIURL
	c.API.TimeoutSeconds = DefaultTimeoutSeconds
	c.Keystore.Bundler = DefaultBundler
	c.Keystore.Migrator = DefaultMigrator
	c.Keystore.DefaultAlias = DefaultAlias
	c.Log.Format = DefaultLogFormat
	return c
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load builds the effective configuration.
//
// Parameters:
//   - configPath: Path to a .json, .yaml or .yml file; empty falls back to
//     VERIBITS_CONFIG_FILE, and no file at all is fine
//
// Returns:
//   - *Config: Configuration with defaults applied
//   - error: If the file cannot be read or parsed, or an env value is malformed
//
// Configuration Priority:
//  1. Default values
//  2. Config file values
//  3. Environment variables (VERIBITS_API_URL, VERIBITS_API_KEY, VERIBITS_TIMEOUT, VERIBITS_LOG_FORMAT)
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
		config.Source = configPath
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		config.API.URL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		config.API.Key = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		config.API.TimeoutSeconds = n
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		config.Log.Format = v
	}

	config.normalize()
	return config, nil
}

// normalize replaces zero or invalid values with defaults.
func (c *Config) normalize() {
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Keystore.Bundler == "" {
		c.Keystore.Bundler = DefaultBundler
	}
	if c.Keystore.Migrator == "" {
		c.Keystore.Migrator = DefaultMigrator
	}
	if c.Keystore.DefaultAlias == "" {
		c.Keystore.DefaultAlias = DefaultAlias
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// MaskedKey returns the API key with all but its last four characters hidden.
func (c *Config) MaskedKey() string {
	k := c.API.Key
	switch {
	case k == "":
		return ""
	case len(k) <= 4:
		return strings.Repeat("*", len(k))
	default:
		return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
	}
}

// Save writes c to path, choosing JSON or YAML by extension.
// The file is created with 0600 permissions since it may hold the API key.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch detectConfigFormat(path) {
	case configFormatYAML:
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
