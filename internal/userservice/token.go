package userservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidToken = errors.New("invalid or missing authentication token")
)

// TokenMaker issues and verifies HS256 signed tokens carrying a user id.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewTokenMaker returns a TokenMaker signing with secret. A ttl of zero or less
// falls back to DefaultTokenTime.
func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	if ttl <= 0 {
		ttl = DefaultTokenTime
	}

	return &TokenMaker{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for u. The subject claim is the user id.
func (tm *TokenMaker) Issue(u *User) (string, error) {
	now := tm.now()

	claims := tokenClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Verify decodes token and returns the user id it was issued for. It has no
// side effects and depends only on the token, the secret and the clock.
func (tm *TokenMaker) Verify(token string) (string, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(tm.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if !primitive.IsValidObjectID(claims.Subject) {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
