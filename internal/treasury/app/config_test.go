package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "treasury.db", cfg.DatabaseFile)
	require.Equal(t, "treasury.db", cfg.DSN())
	require.Equal(t, "treasury", cfg.Issuer)
	require.Equal(t, 12*time.Hour, cfg.AccessTTL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Empty(t, cfg.BootstrapToken)
}

func TestLoadConfigFileUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treasury.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
TREASURY_DB_DRIVER: postgres
TREASURY_DATABASE_URL: postgres://file/treasury
PORT: 9090
LOG_FORMAT: text
TREASURY_ACCESS_TTL: 1h
`), 0o600))

	cfg, err := loadConfig(path, map[string]string{
		"TREASURY_DATABASE_URL": "postgres://env/treasury",
		"BOOTSTRAP_TOKEN":       "s3cret",
	})
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, "postgres://env/treasury", cfg.DSN(), "environment wins over the file")
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, time.Hour, cfg.AccessTTL)
	require.Equal(t, "s3cret", cfg.BootstrapToken)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{"unknown driver", map[string]string{"TREASURY_DB_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"TREASURY_DB_DRIVER": "postgres"}},
		{"zero ttl", map[string]string{"TREASURY_ACCESS_TTL": "0s"}},
		{"bad port", map[string]string{"PORT": "70000"}},
		{"unparseable duration", map[string]string{"SHUTDOWN_GRACE_PERIOD": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig("", tt.environ)
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), map[string]string{})
	require.ErrorContains(t, err, "error reading config file")
}
