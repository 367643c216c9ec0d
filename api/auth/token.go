package auth

import (
	"errors"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid. There is no refresh and no revocation.
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenService issues and verifies HS256 bearer tokens carrying arbitrary claims.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock returns a copy of the service reading time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	return &TokenService{secret: s.secret, now: now}
}

// Issue signs a copy of claims with an injected exp of now + TokenTTL.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	payload := make(jwt.MapClaims, len(claims)+1)
	maps.Copy(payload, claims)
	payload["exp"] = s.now().Add(TokenTTL).Unix()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
}

// Verify checks structure, signature and expiry and returns the decoded claims, exp included.
func (s *TokenService) Verify(token string) (map[string]any, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
