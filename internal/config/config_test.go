package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
data:
  dir: /var/lib/autofacil
auth:
  default_admin_username: root
  default_admin_password: changeme
log:
  level: debug
  format: json
scheduler:
  report_overdue_rentals: "0 0 4 * * *"
  backup_stores: "0 15 4 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/autofacil", cfg.Data.Dir)
	assert.Equal(t, "root", cfg.Auth.DefaultAdminUsername)
	assert.Equal(t, "changeme", cfg.Auth.DefaultAdminPassword)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0 0 4 * * *", cfg.Scheduler.ReportOverdueRentals)
	assert.Equal(t, "0 15 4 * * *", cfg.Scheduler.BackupStores)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, "data: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "admin", cfg.Auth.DefaultAdminUsername)
	assert.Equal(t, "admin", cfg.Auth.DefaultAdminPassword)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.ReportOverdueRentals)
	assert.Equal(t, "0 30 3 * * *", cfg.Scheduler.BackupStores)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTOFACIL_DATA_DIR", "/tmp/override")
	t.Setenv("AUTOFACIL_ADMIN_USERNAME", "operator")
	t.Setenv("AUTOFACIL_LOG_LEVEL", "warn")

	path := writeConfigFile(t, `
data:
  dir: /var/lib/autofacil
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override", cfg.Data.Dir)
	assert.Equal(t, "operator", cfg.Auth.DefaultAdminUsername)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfigFile(t, "data: [not: a mapping\n"))
	assert.Error(t, err)
}
