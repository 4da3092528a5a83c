package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier checks treasury access tokens against the public keys in a
// KeySet. Signature, algorithm and expiry are enforced by the parser; issuer
// and audience by the claims.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	aud    []string
	parser *jwt.Parser
}

func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	return &EdDSAVerifier{
		keys:   keys,
		issuer: issuer,
		aud:    aud,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// keyFor resolves the token's kid header to a published Ed25519 key.
func (v *EdDSAVerifier) keyFor(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMalformed
	}
	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownKID, kid, err)
	}
	key, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: key %q is %T, not Ed25519", kid, pub)
	}
	return key, nil
}

func (v *EdDSAVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenStr, claims, v.keyFor)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("jwtx: invalid token")
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return nil, err
	}
	return claims, nil
}
