package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

type Config struct {
	Secret string
	// TTL of zero yields tokens that are already expired.
	TTL time.Duration
	// Now defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Claims is the full payload carried by a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(cfg Config) (*Signer, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("jwt ttl must not be negative: %s", cfg.TTL)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Signer{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    now,
	}, nil
}

func (s *Signer) Issue(subject string) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// Verify returns the subject of a token signed by this Signer that has not
// yet expired.
func (s *Signer) Verify(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Signer) Parse(tokenString string) (*Claims, error) {
	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&registered,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
