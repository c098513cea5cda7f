package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krmu/lostfound-api/internal/model"
)

// TokenClaims is the payload carried by a login token: the account id and
// its role, plus the registered expiry claims.
type TokenClaims struct {
	UserID string     `json:"id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator signs and validates HS256 login tokens.
type JWTAuthenticator struct {
	issuer string
	ttl    time.Duration
}

// NewJWTAuthenticator creates a JWTAuthenticator that issues tokens valid
// for ttl.
func NewJWTAuthenticator(issuer string, ttl time.Duration) JWTAuthenticator {
	return JWTAuthenticator{
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateToken issues a signed token for the given user id and role.
func (a *JWTAuthenticator) GenerateToken(userID string, role model.Role, secret string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateToken validates a token with the given secret and returns its
// claims.
func (a *JWTAuthenticator) ValidateToken(tokenString, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
