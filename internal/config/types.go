// Package config provides configuration loading for mdnsexplorer using Viper.
// Configuration is loaded from YAML files with automatic environment variable binding.
//
// Environment variables use the MDNSEXPLORER_ prefix and underscore-separated keys:
//   - MDNSEXPLORER_CAPTURE_INTERFACE -> capture.interface
//   - MDNSEXPLORER_API_PORT -> api.port
//   - MDNSEXPLORER_STORE_PATH -> store.path
package config

import (
	"os"
	"strings"
)

// CaptureConfig controls the mDNS multicast listener.
type CaptureConfig struct {
	Interface       string `yaml:"interface"         mapstructure:"interface"`
	Group           string `yaml:"group"             mapstructure:"group"`
	Port            int    `yaml:"port"              mapstructure:"port"`
	ReadBufferBytes int    `yaml:"read_buffer_bytes" mapstructure:"read_buffer_bytes"`
	Workers         int    `yaml:"workers"           mapstructure:"workers"`
}

// StoreConfig contains rolling-history storage settings.
type StoreConfig struct {
	Path            string `yaml:"path"             mapstructure:"path"`
	MaxMessages     int    `yaml:"max_messages"     mapstructure:"max_messages"`
	RetentionPeriod string `yaml:"retention_period" mapstructure:"retention_period"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"             json:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// APIConfig contains the live-view management API settings.
//
// Note: APIKey is intentionally treated as a secret and should not be returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host"    mapstructure:"host"`
	Port    int    `yaml:"port"    mapstructure:"port"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
}

// MetricsConfig controls OpenTelemetry/Prometheus metrics export.
type MetricsConfig struct {
	OTLPEndpoint       string `yaml:"otlp_endpoint"       mapstructure:"otlp_endpoint"`
	PrometheusEndpoint string `yaml:"prometheus_endpoint" mapstructure:"prometheus_endpoint"`
}

// Config is the root configuration structure.
type Config struct {
	Capture CaptureConfig `yaml:"capture" mapstructure:"capture"`
	Store   StoreConfig   `yaml:"store"   mapstructure:"store"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	API     APIConfig     `yaml:"api"     mapstructure:"api"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ResolveConfigPath determines the config file path from flag or environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("MDNSEXPLORER_CONFIG")); v != "" {
		return v
	}
	return ""
}
