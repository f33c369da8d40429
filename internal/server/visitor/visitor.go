// Package visitor issues and verifies anonymous visitor identities.
// The identity is a random UUID carried as the subject of an HS256 token,
// so a visitor cannot claim another visitor's id by editing the cookie.
package visitor

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "civicvote"

// DefaultTTL срок жизни идентичности посетителя (около года)
const DefaultTTL = 365 * 24 * time.Hour

// ErrInvalidToken возвращается для подделанного, просроченного или битого токена
var ErrInvalidToken = errors.New("invalid visitor token")

// Claims JWT claims идентичности посетителя; Subject содержит visitor id
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer mints and parses visitor tokens.
type Issuer struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. ttl <= 0 selects DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("visitor secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the identity lifetime
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Mint creates a new visitor identity and its signed token.
func (i *Issuer) Mint() (token, visitorID string, expiresAt time.Time, err error) {
	now := i.now()
	expiresAt = now.Add(i.ttl)
	visitorID = uuid.New().String()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   visitorID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign visitor token: %w", err)
	}

	return token, visitorID, expiresAt, nil
}

// Parse validates token and returns the visitor id it carries.
func (i *Issuer) Parse(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a visitor id", ErrInvalidToken)
	}

	return claims.Subject, nil
}
