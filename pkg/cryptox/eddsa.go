package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

const pemPrivateKey = "PRIVATE KEY"

// GenerateEd25519Key returns a fresh signing key as PKCS8 PEM, the format
// `treasury keygen` writes and the server reads at start.
func GenerateEd25519Key() ([]byte, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate Ed25519 key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: marshal PKCS8 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemPrivateKey, Bytes: der}), nil
}

// ParseEd25519Key reads a PKCS8 PEM private key and rejects any other
// algorithm.
func ParseEd25519Key(pemKey []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("cryptox: invalid PEM for Ed25519 key")
	}
	if block.Type != pemPrivateKey {
		return nil, fmt.Errorf("cryptox: expected %s block, got %q", pemPrivateKey, block.Type)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKCS8: %w", err)
	}
	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: signing key is %T, not Ed25519", parsed)
	}
	return key, nil
}

// Ed25519KeyID derives a short stable key id from a public key, so replacing
// the key file yields a new id in the JWKS.
func Ed25519KeyID(pub ed25519.PublicKey) string {
	return FingerprintToken(string(pub))[:16]
}
