package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"church-api/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong algorithm, missing claims, expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a verified token asserts about its bearer. The role is
// informational; guards always re-read the user row, so claims never
// outrank current store state.
type Claims struct {
	UserID string
	Role   models.Role
}

// TokenIssuer signs and verifies HS256 bearer tokens with a
// process-wide secret. Built once at startup, immutable after.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

// Issue creates a signed token binding the subject id and role,
// expiring TTL from now.
func (t *TokenIssuer) Issue(userID string, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(t.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// Verify parses and validates a token string. Any failure collapses to
// ErrInvalidToken; callers map it to an authentication error, never a
// fatal one.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: sub, Role: models.Role(role)}, nil
}
