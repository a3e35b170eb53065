package httpapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the session identifier inside the signed cookie value.
type Claims struct {
	jwt.RegisteredClaims
	SID string `json:"sid"`
}

// CookieSigner turns a SessionID into a tamper-evident cookie value and
// back. Values are HS256 JWTs that expire after ttl.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCookieSigner(secret string, ttl time.Duration) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns the cookie value for sid together with its expiry.
func (s *CookieSigner) Sign(sid auth.SessionID) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		SID: string(sid),
	})

	value, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session cookie: %w", err)
	}
	return value, exp, nil
}

// Parse verifies value and returns the session identifier it carries.
// Expired values yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func (s *CookieSigner) Parse(value string) (auth.SessionID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.SID == "" {
		return "", common.ErrInvalidToken
	}

	return auth.SessionID(claims.SID), nil
}
