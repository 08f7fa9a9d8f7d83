package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "promptkeeper.db", c.DatabasePath)
	assert.Equal(t, "promptkeeper.prompts", c.StorageKey)
	assert.True(t, c.TrackMetadata)
	assert.Equal(t, "gpt-4o", c.DefaultModel)
	assert.Equal(t, "exports", c.ExportDir)
	assert.Equal(t, "json", c.ExportFormat)
	assert.False(t, c.Ephemeral)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.S3.Enabled())
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "promptkeeper.db", cfg.DatabasePath)
	assert.True(t, cfg.TrackMetadata)
}
