package treasury_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := setupTreasury(t)
	ctx := t.Context()

	t.Run("livez", func(t *testing.T) {
		health, err := client.GetLiveness(ctx)
		assertHealthy(t, health, err)
		require.NotEmpty(t, health.Version)
	})

	t.Run("readyz without a semester", func(t *testing.T) {
		health, err := client.GetReadiness(ctx)
		assertHealthy(t, health, err)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
		require.Equal(t, "ok", health.Checks.Signer)
		require.Equal(t, "none", health.Checks.Semester)
	})

	t.Run("readyz after rollover", func(t *testing.T) {
		president := bootstrapPresident(t, client)
		rollover(t, president, "fall", 2024)

		health, err := client.GetReadiness(ctx)
		assertHealthy(t, health, err)
		require.Equal(t, "ok", health.Checks.Semester)
	})

	t.Run("jwks", func(t *testing.T) {
		jwks, err := client.GetJWKS(ctx)
		require.NoError(t, err)
		require.Len(t, jwks.Keys, 1)
		require.Equal(t, "OKP", jwks.Keys[0].Kty)
		require.Equal(t, "EdDSA", jwks.Keys[0].Alg)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(client.BaseURL + "/metrics")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "treasury_http_requests_total")
	})
}
