package jwtx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/treasury/pkg/cryptox"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
	Validate() error
}

// NewSignerEdDSA creates an EdDSA signer from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	return newEdDSASigner(kid, pemKey)
}

// LoadOrGenerateSigner reads the Ed25519 signing key at path, creating it
// on first start.
func LoadOrGenerateSigner(path string) (Signer, error) {
	path = filepath.Clean(path)
	pemKey, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("jwtx: create key dir: %w", err)
		}
		if err := os.WriteFile(path, pemKey, 0600); err != nil {
			return nil, fmt.Errorf("jwtx: write signing key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("jwtx: read signing key: %w", err)
	}

	s, err := newEdDSASigner("", pemKey)
	if err != nil {
		return nil, err
	}
	return s, s.Validate()
}
