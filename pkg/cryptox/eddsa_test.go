package cryptox_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	key, err := cryptox.ParseEd25519Key(pemBytes)
	require.NoError(t, err)
	require.Len(t, key, ed25519.PrivateKeySize)

	pub := key.Public().(ed25519.PublicKey)
	require.Len(t, cryptox.Ed25519KeyID(pub), 16)
	require.Equal(t, cryptox.Ed25519KeyID(pub), cryptox.Ed25519KeyID(pub))

	other, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	otherKey, err := cryptox.ParseEd25519Key(other)
	require.NoError(t, err)
	require.NotEqual(t, cryptox.Ed25519KeyID(pub), cryptox.Ed25519KeyID(otherKey.Public().(ed25519.PublicKey)))
}

func TestParseEd25519KeyRejects(t *testing.T) {
	_, err := cryptox.ParseEd25519Key([]byte("not-a-pem-key"))
	require.ErrorContains(t, err, "invalid PEM")

	_, err = cryptox.ParseEd25519Key(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{1}}))
	require.ErrorContains(t, err, "expected PRIVATE KEY")

	ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(ec)
	require.NoError(t, err)
	_, err = cryptox.ParseEd25519Key(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	require.ErrorContains(t, err, "not Ed25519")
}
