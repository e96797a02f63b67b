package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INVENTORLY_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverMemory, cfg.Database.Driver)
	require.Equal(t, 60, cfg.Auth.ResendSeconds)
	require.Equal(t, 2500*time.Millisecond, cfg.Auth.LoadingDelay)
	require.Equal(t, 2*time.Second, cfg.Import.ParseDelay)
	require.True(t, cfg.Auth.AcceptAnyCode)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	body := `
[database]
driver = "sqlite"
path = "/tmp/inv.db"

[auth]
loading_delay = "1s"
accept_any_code = false

[import]
parse_delay = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("INVENTORLY_CONFIG", path)
	t.Setenv("INVENTORLY_UI_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "/tmp/inv.db", cfg.Database.Path)
	require.Equal(t, time.Second, cfg.Auth.LoadingDelay)
	require.False(t, cfg.Auth.AcceptAnyCode)
	require.Equal(t, 250*time.Millisecond, cfg.Import.ParseDelay)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	require.Equal(t, 60, cfg.Auth.ResendSeconds)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INVENTORLY_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Database.Driver = "postgres"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Database.Driver = DriverSQLite
	bad.Database.Path = " "
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Auth.ResendSeconds = 0
	require.Error(t, bad.Validate())
}
