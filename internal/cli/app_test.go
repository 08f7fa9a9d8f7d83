package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/promptkeeper/internal/config"
	"github.com/dmitrijs2005/promptkeeper/internal/exporter"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, is bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return is }
	t.Cleanup(func() { isTerminal = orig })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "pk.db")
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.LogLevel = "error"
	return cfg
}

func TestNewApp_SQLite(t *testing.T) {
	stubTerminal(t, false)
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &exporter.FileSink{}, app.sink)
	require.False(t, app.interactive)

	_, err = app.records.AddRecord(ctx, "t", "c", "gpt-4o")
	require.NoError(t, err)
	require.NoError(t, app.Close())
	require.NoError(t, app.Close(), "second close is a no-op")

	_, err = os.Stat(cfg.DatabasePath)
	require.NoError(t, err)

	// A new session sees the saved prompt.
	again, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer again.Close()
	require.Len(t, again.records.Load(ctx), 1)
}

func TestNewApp_Ephemeral(t *testing.T) {
	stubTerminal(t, true)
	cfg := testConfig(t)
	cfg.Ephemeral = true

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	require.True(t, app.interactive)
	_, err = os.Stat(cfg.DatabasePath)
	require.True(t, os.IsNotExist(err), "ephemeral sessions must not create a database")
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	stubTerminal(t, false)
	cfg := testConfig(t)
	cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "pk.db")

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_S3Sink(t *testing.T) {
	stubTerminal(t, false)
	cfg := testConfig(t)
	cfg.Ephemeral = true
	cfg.S3.Bucket = "prompts"
	cfg.S3.Endpoint = "http://127.0.0.1:9000"
	cfg.S3.AccessKey = "minioadmin"
	cfg.S3.SecretKey = "minioadmin"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()
	require.IsType(t, &exporter.S3Sink{}, app.sink)
}

func TestAnnouncer_Prefix(t *testing.T) {
	var buf bytes.Buffer
	announcer{w: &buf}.Announce("Prompt added")
	require.Equal(t, "» Prompt added\n", buf.String())
}
