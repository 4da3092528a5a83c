package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServesHealth(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig("", map[string]string{
		"TREASURY_DATABASE_FILE":    filepath.Join(dir, "treasury.db"),
		"TREASURY_PEPPER_FILE":      filepath.Join(dir, "pepper"),
		"TREASURY_SIGNING_KEY_FILE": filepath.Join(dir, "keys", "signing.pem"),
		"LOG_LEVEL":                 "error",
	})
	require.NoError(t, err)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	_, err = os.Stat(cfg.SigningKeyFile)
	require.NoError(t, err, "signing key is generated on first start")
	_, err = os.Stat(cfg.PepperFile)
	require.NoError(t, err, "pepper is generated on first start")

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), application.signer.KID())

	ok, err := application.Services.Bootstrap.IsBootstrapped(t.Context())
	require.NoError(t, err)
	require.False(t, ok)
}
