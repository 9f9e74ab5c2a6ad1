package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "ayushdesk/pkg/domain-errors"
)

// Claims are the JWT claims for admin session tokens.
type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService creates and validates admin session tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewTokenService builds a token service signing with HS256.
func NewTokenService(signingKey, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{signingKey: []byte(signingKey), issuer: issuer, ttl: ttl}
}

// Generate issues a session token for the given operator.
func (s *TokenService) Generate(email, displayName string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:       email,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate parses a session token and returns its claims.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil || !token.Valid {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid session token")
	}
	return claims, nil
}
