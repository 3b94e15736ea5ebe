package helper

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type FederatedClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// FederatedVerifier checks RS256 ID tokens minted by an external identity
// provider for the configured issuer and audience.
type FederatedVerifier struct {
	issuer   string
	audience string
	key      *rsa.PublicKey
	now      func() time.Time
}

func NewFederatedVerifier(issuer, audience string, key *rsa.PublicKey) *FederatedVerifier {
	return &FederatedVerifier{issuer: issuer, audience: audience, key: key, now: time.Now}
}

// ParseFederatedKey reads a PEM encoded RSA public key.
func ParseFederatedKey(pem string) (*rsa.PublicKey, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parse federated public key: %w", err)
	}
	return key, nil
}

func (v *FederatedVerifier) Verify(idToken string) (*FederatedClaims, error) {
	token, err := jwt.ParseWithClaims(
		idToken,
		&FederatedClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return v.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*FederatedClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, fmt.Errorf("%w: email missing or unverified", ErrInvalidToken)
	}
	return claims, nil
}
