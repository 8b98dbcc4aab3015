package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[fleet_api]
url = "https://fleet.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, SessionBackendSQLite, cfg.Session.Backend)
	assert.Equal(t, 30*time.Second, cfg.AdminRefreshInterval())
	assert.Equal(t, 10*time.Second, cfg.FleetAPITimeout())
	assert.Equal(t, 5*time.Minute, cfg.ImportWaitTimeout())
	assert.InDelta(t, 0.20, cfg.Pricing.VATRate, 1e-9)
}

func TestLoad_OverridesSections(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[fleet_api]
url = "http://localhost:3000"
timeout = 3

[session]
backend = "postgres"

[session.database]
host = "db"
dbname = "fleet"
user = "fleet"
password = "secret"

[store]
admin_refresh_interval = 5

[pricing]
vat_rate = 0.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 3*time.Second, cfg.FleetAPITimeout())
	assert.Equal(t, 5*time.Second, cfg.AdminRefreshInterval())
	assert.Equal(t, "host=db port=5432 user=fleet password=secret dbname=fleet sslmode=disable", cfg.Session.Database.DSN())
	assert.InDelta(t, 0.1, cfg.Pricing.VATRate, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing api url", content: `[server]
http_port = 8080`},
		{name: "unknown backend", content: `[fleet_api]
url = "http://localhost"
[session]
backend = "etcd"`},
		{name: "bad vat", content: `[fleet_api]
url = "http://localhost"
[pricing]
vat_rate = 1.5`},
		{name: "wait shorter than poll", content: `[fleet_api]
url = "http://localhost"
[store]
import_poll_interval = 10
import_wait_timeout = 5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
