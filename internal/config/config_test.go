package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MDNSEXPLORER_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "224.0.0.251", cfg.Capture.Group)
	assert.Equal(t, 5353, cfg.Capture.Port)
	assert.Equal(t, 4, cfg.Capture.Workers)
	assert.True(t, cfg.API.Enabled)
	assert.Equal(t, "127.0.0.1", cfg.API.Host)
	assert.Equal(t, 10000, cfg.Store.MaxMessages)
}

func TestLoadFromFile(t *testing.T) {
	content := `
capture:
  interface: "eth0"
  group: "224.0.0.251"
  port: 5353
  workers: 8

store:
  path: "test.db"
  max_messages: 500
  retention_period: "30m"

logging:
  level: "DEBUG"
  structured: true
  structured_format: "keyvalue"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eth0", cfg.Capture.Interface)
	assert.Equal(t, 8, cfg.Capture.Workers)
	assert.Equal(t, "test.db", cfg.Store.Path)
	assert.Equal(t, 500, cfg.Store.MaxMessages)
	assert.Equal(t, "30m", cfg.Store.RetentionPeriod)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Structured)
	assert.Equal(t, "keyvalue", cfg.Logging.StructuredFormat)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capture:\n  port: [invalid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidPort(t *testing.T) {
	content := `
capture:
  port: 0
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeDefaultsFillGaps(t *testing.T) {
	content := `
capture:
  port: 5353
  workers: 0
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Capture.Workers, "zero workers should fall back to the default")
	assert.Equal(t, "224.0.0.251", cfg.Capture.Group)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MDNSEXPLORER_CAPTURE_INTERFACE", "en0")
	t.Setenv("MDNSEXPLORER_CAPTURE_PORT", "5353")
	t.Setenv("MDNSEXPLORER_STORE_MAX_MESSAGES", "250")
	t.Setenv("MDNSEXPLORER_LOGGING_LEVEL", "debug")
	t.Setenv("MDNSEXPLORER_API_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "en0", cfg.Capture.Interface)
	assert.Equal(t, 5353, cfg.Capture.Port)
	assert.Equal(t, 250, cfg.Store.MaxMessages)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.API.Port)
}
