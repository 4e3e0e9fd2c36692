package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", settings.Server.Port)
	assert.Equal(t, 30, settings.Alerts.WindowDays)
	assert.Equal(t, "weekly", settings.Generator.Cadence)
	assert.Equal(t, []string{"SMM.MONEY", "SMM.ER"}, settings.Overview.KPIs)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kpi.yaml")
	content := `
server:
  port: "9090"
alerts:
  window_days: 14
generator:
  cadence: daily
  probability: 0.5
  seed: 99
storage:
  prune_interval: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("KPI_STORAGE_DB_PATH", "/tmp/kpi.db")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", settings.Server.Port)
	assert.Equal(t, 14, settings.Alerts.WindowDays)
	assert.Equal(t, "daily", settings.Generator.Cadence)
	assert.Equal(t, 0.5, settings.Generator.Probability)
	assert.Equal(t, uint64(99), settings.Generator.Seed)
	assert.Equal(t, "/tmp/kpi.db", settings.Storage.DBPath)
	assert.Equal(t, 30*time.Minute, settings.Storage.PruneInterval)
	assert.Equal(t, 20, settings.Storage.KeepSnapshots)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kpi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  cadence: hourly\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
