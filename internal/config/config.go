// Package config provides configuration loading and validation for mdnsexplorer.
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Command-line flags (not handled here, see cmd/mdnsexplorer/main.go)
//  2. Environment variables (MDNSEXPLORER_* prefix)
//  3. YAML config file (if specified with --config)
//  4. Hardcoded defaults
//
// Environment variables are mapped from MDNSEXPLORER_CATEGORY_SETTING format,
// e.g., MDNSEXPLORER_CAPTURE_INTERFACE maps to capture.interface in YAML.
//
// All configuration is validated during Load() to ensure correctness early.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// initConfig sets up the config loader with defaults, env binding, and config file.
func initConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment variable binding
	// Uses MDNSEXPLORER_ prefix: MDNSEXPLORER_CAPTURE_INTERFACE -> capture.interface
	v.SetEnvPrefix("MDNSEXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults configures all default values.
func setDefaults(v *viper.Viper) {
	// Capture defaults
	v.SetDefault("capture.interface", "")
	v.SetDefault("capture.group", "224.0.0.251")
	v.SetDefault("capture.port", 5353)
	v.SetDefault("capture.read_buffer_bytes", 65536)
	v.SetDefault("capture.workers", 4)

	// Store defaults
	v.SetDefault("store.path", "mdnsexplorer.db")
	v.SetDefault("store.max_messages", 10000)
	v.SetDefault("store.retention_period", "1h")

	// Logging defaults
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("logging.include_pid", false)
	v.SetDefault("logging.extra_fields", map[string]string{})

	// Management API defaults
	// Default to enabled and bound to localhost: the live view is the point of the tool.
	v.SetDefault("api.enabled", true)
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.api_key", "")

	// Metrics defaults (disabled unless an endpoint is configured)
	v.SetDefault("metrics.otlp_endpoint", "")
	v.SetDefault("metrics.prometheus_endpoint", "")
}

// loadFromSource loads configuration from file and environment.
func loadFromSource(configPath string) (*Config, error) {
	v, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	loadCaptureConfig(v, cfg)
	loadStoreConfig(v, cfg)
	loadLoggingConfig(v, cfg)
	loadAPIConfig(v, cfg)
	loadMetricsConfig(v, cfg)

	// Normalize and validate
	if err := normalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadCaptureConfig(v *viper.Viper, cfg *Config) {
	cfg.Capture.Interface = v.GetString("capture.interface")
	cfg.Capture.Group = v.GetString("capture.group")
	cfg.Capture.Port = v.GetInt("capture.port")
	cfg.Capture.ReadBufferBytes = v.GetInt("capture.read_buffer_bytes")
	cfg.Capture.Workers = v.GetInt("capture.workers")
}

func loadStoreConfig(v *viper.Viper, cfg *Config) {
	cfg.Store.Path = v.GetString("store.path")
	cfg.Store.MaxMessages = v.GetInt("store.max_messages")
	cfg.Store.RetentionPeriod = v.GetString("store.retention_period")
}

func loadLoggingConfig(v *viper.Viper, cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(v.GetString("logging.level"))
	cfg.Logging.Structured = v.GetBool("logging.structured")
	cfg.Logging.StructuredFormat = v.GetString("logging.structured_format")
	cfg.Logging.IncludePID = v.GetBool("logging.include_pid")
	cfg.Logging.ExtraFields = v.GetStringMapString("logging.extra_fields")
}

func loadAPIConfig(v *viper.Viper, cfg *Config) {
	cfg.API.Enabled = v.GetBool("api.enabled")
	cfg.API.Host = v.GetString("api.host")
	cfg.API.Port = v.GetInt("api.port")
	cfg.API.APIKey = v.GetString("api.api_key")
}

func loadMetricsConfig(v *viper.Viper, cfg *Config) {
	cfg.Metrics.OTLPEndpoint = v.GetString("metrics.otlp_endpoint")
	cfg.Metrics.PrometheusEndpoint = v.GetString("metrics.prometheus_endpoint")
}

// normalizeConfig validates and normalizes the configuration.
func normalizeConfig(cfg *Config) error {
	// Validate capture port
	if cfg.Capture.Port <= 0 || cfg.Capture.Port > 65535 {
		return errors.New("capture.port must be 1..65535")
	}
	if cfg.Capture.Group == "" {
		cfg.Capture.Group = "224.0.0.251"
	}
	if cfg.Capture.Workers <= 0 {
		cfg.Capture.Workers = 4
	}
	if cfg.Capture.ReadBufferBytes <= 0 {
		cfg.Capture.ReadBufferBytes = 65536
	}

	// Normalize store
	if cfg.Store.Path == "" {
		cfg.Store.Path = "mdnsexplorer.db"
	}
	if cfg.Store.MaxMessages <= 0 {
		cfg.Store.MaxMessages = 10000
	}
	if cfg.Store.RetentionPeriod == "" {
		cfg.Store.RetentionPeriod = "1h"
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}

// Load loads configuration from a YAML file with environment variable overrides.
// This is the main entry point for loading configuration.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (MDNSEXPLORER_*)
//  2. Config file values
//  3. Default values
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
