package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, []string{"*"}, cfg.Server.Cors.AllowedOrigins)
	assert.Equal(t, "characters.db", cfg.Database.Path)
	assert.True(t, cfg.Database.SeedOnCreate)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  address: \":9000\"\n  mode: debug\ndatabase:\n  path: data/hanzi.db\n  seedOnCreate: false\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("HANZI_SERVER_ADDRESS", ":9100")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Address, "环境变量应覆盖配置文件")
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "data/hanzi.db", cfg.Database.Path)
	assert.False(t, cfg.Database.SeedOnCreate)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Mode: "staging", Address: ":5000"},
		Database: DatabaseConfig{Path: "x.db"},
	}
	assert.Error(t, cfg.Validate())
}
