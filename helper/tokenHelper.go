package helper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	AccessToken  = "access"
	RefreshToken = "refresh"

	accessTTL  = 24 * time.Hour
	refreshTTL = 168 * time.Hour
)

type SignedDetails struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Uid         string `json:"uid"`
	Kind        string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates admin session tokens with a shared HS256 secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// GenerateAllTokens creates the access token (24h) and refresh token (7 days).
func (t *TokenIssuer) GenerateAllTokens(email, displayName, uid string) (signedToken string, signedRefreshToken string, err error) {
	now := t.now()

	claims := &SignedDetails{
		Email:       email,
		DisplayName: displayName,
		Uid:         uid,
		Kind:        AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
	}

	refreshClaims := &SignedDetails{
		Uid:  uid,
		Kind: RefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
		},
	}

	signedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	signedRefreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return signedToken, signedRefreshToken, nil
}

// ValidateToken checks signature, expiry and that the token is of the wanted kind.
func (t *TokenIssuer) ValidateToken(signedToken, kind string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, kind)
	}

	return claims, nil
}
