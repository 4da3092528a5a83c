package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/treasury/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner signs treasury access tokens with an Ed25519 key.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// newEdDSASigner parses pemKey. An empty kid is derived from the public key.
func newEdDSASigner(kid string, pemKey []byte) (*EdDSASigner, error) {
	key, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	pub, _ := key.Public().(ed25519.PublicKey)
	if kid == "" {
		kid = cryptox.Ed25519KeyID(pub)
	}
	return &EdDSASigner{kid: kid, key: key, pub: pub}, nil
}

func (s *EdDSASigner) Alg() string { return jwt.SigningMethodEdDSA.Alg() }
func (s *EdDSASigner) KID() string { return s.kid }

// Sign produces a compact JWT carrying the signer's kid header.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK is the entry published on /.well-known/jwks.json.
func (s *EdDSASigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, "sig", s.Alg(), s.pub)
}

func (s *EdDSASigner) Validate() error {
	switch {
	case len(s.key) != ed25519.PrivateKeySize:
		return errors.New("jwtx: invalid Ed25519 private key size")
	case len(s.pub) != ed25519.PublicKeySize:
		return errors.New("jwtx: invalid Ed25519 public key size")
	case s.kid == "":
		return errors.New("jwtx: signer has no kid")
	}
	return nil
}
