package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("dataset: ./data.json\n"))
	require.NoError(t, err)

	assert.Equal(t, "./data.json", cfg.Dataset)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:4300", cfg.Server.Addr)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestParseConfig_Full(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
log:
  level: debug
  format: json
server:
  addr: 0.0.0.0:8080
  cors_origin: https://nmind.org
output:
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "https://nmind.org", cfg.Server.CORSOrigin)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Empty(t, cfg.Dataset)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte("log: [unterminated"))
	require.Error(t, err)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NMIND_DATASET", "")
	t.Setenv("NMIND_LOG_LEVEL", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("dataset: from-file.json\nlog:\n  level: warn\n"), 0o644))

	t.Setenv("NMIND_DATASET", "from-env.json")
	t.Setenv("NMIND_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Dataset)
	assert.Equal(t, "debug", cfg.Log.Level)
}
