package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"table-reconciler/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.IdleTimeoutMinutes)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "reconciliation", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5000, cfg.Reconcile.PairCeiling)
	assert.Equal(t, "SQL", cfg.Reconcile.ReferenceLabel)
	assert.Equal(t, 50, cfg.Reconcile.PreviewRows)
	assert.Equal(t, 100, cfg.Reconcile.PageSize)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RECONCILE_PAIR_CEILING", "250")
	t.Setenv("SERVER_IDLE_TIMEOUT_MINUTES", "3")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Reconcile.PairCeiling)
	assert.Equal(t, 3, cfg.Server.IdleTimeoutMinutes)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RECONCILE_REFERENCE_LABEL=Warehouse\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RECONCILE_REFERENCE_LABEL") })

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", cfg.Reconcile.ReferenceLabel)
}
