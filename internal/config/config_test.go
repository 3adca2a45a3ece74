package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
general:
  language: zh
ui:
  theme: catppuccin-mocha
workspace:
  page_size: 50
history:
  path: /tmp/pgdesk-test/consoles.db
connections:
  - alias: local
    host: localhost
    database: shop
    user: app
    list_all_databases: true
  - id: fixed-id
    alias: staging
    host: staging.internal
    port: 5433
    database: shop
    user: app
    ssl_mode: require
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.Equal(t, "zh", cfg.General.Language)
	assert.Equal(t, "catppuccin-mocha", cfg.UI.Theme)
	assert.Equal(t, 50, cfg.Workspace.PageSize)
	assert.Equal(t, "/tmp/pgdesk-test/consoles.db", cfg.History.Path)
	assert.Equal(t, 30000, cfg.Performance.QueryTimeout)
	assert.Equal(t, 4, cfg.Performance.MetadataConcurrency)

	require.Len(t, cfg.Connections, 2)
	local := cfg.Connections[0]
	assert.Equal(t, 5432, local.Port)
	assert.Equal(t, "prefer", local.SSLMode)
	assert.True(t, local.ListAllDatabases)
	assert.NotEmpty(t, local.ID)

	staging, ok := cfg.FindConnection("staging")
	require.True(t, ok)
	assert.Equal(t, "fixed-id", staging.ID)
	assert.Equal(t, "require", staging.SSLMode)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.General.Language)
	assert.Equal(t, 999, cfg.Workspace.PageSize)
	assert.Equal(t, filepath.Join(dir, "pgdesk", "consoles.db"), cfg.History.Path)
	assert.Equal(t, filepath.Join(dir, "pgdesk", "pgdesk.log"), cfg.Log.File)
	assert.Empty(t, cfg.Connections)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvAndFlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PGDESK_WORKSPACE_PAGE_SIZE", "25")

	flags := pflag.NewFlagSet("pgdesk", pflag.ContinueOnError)
	flags.String("connection", "", "")
	require.NoError(t, flags.Parse([]string{"--connection", "staging"}))

	cfg, err := Load(writeConfig(t, sampleConfig), flags)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Workspace.PageSize)
	assert.Equal(t, "staging", cfg.General.DefaultConnection)
}
