// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It performs no I/O: the signing secret is handed in at
// construction and never leaves the [TokenService].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSignature covers every token that cannot be trusted:
	// tampered payload, wrong key, wrong algorithm, or malformed input.
	ErrInvalidSignature = errors.New("sec: invalid token signature")

	// ErrTokenExpired is returned for an authentic token whose exp has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrEmptySecret is returned by [NewTokenService] for an empty key.
	ErrEmptySecret = errors.New("sec: signing secret must not be empty")
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// The username lives in the standard 'sub' claim; roles ride alongside so the
// [middleware.Authenticate] gate can authorize without a database lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	Roles []string `json:"roles"`
}

// Username returns the subject the token was issued for.
func (claims *AuthClaims) Username() string {
	return claims.Subject
}

// HasRole reports whether the principal carries role.
func (claims *AuthClaims) HasRole(role string) bool {
	return HasRole(claims.Roles, role)
}

// TokenService issues and verifies HS512-signed bearer tokens.
//
// # Concurrency
//
// All fields are immutable after construction; a single instance is shared
// by every request goroutine.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
	now        func() time.Time
}

// Option customises a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source. Used by tests to move across the expiry boundary.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a TokenService that signs with secret.
func NewTokenService(secret []byte, issuer string, timeToLive time.Duration, opts ...Option) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	service := &TokenService{
		secret:     append([]byte(nil), secret...),
		issuer:     issuer,
		timeToLive: timeToLive,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Issue creates a signed token for subject carrying roles.
// exp is exactly iat plus the configured lifetime.
func (service *TokenService) Issue(subject string, roles []string) (string, error) {
	issuedAt := service.now().Truncate(time.Second)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.timeToLive)),
		},
		Roles: append([]string(nil), roles...),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature of tokenString and then its expiry.
//
// # Ordering
//
// The parser authenticates the signature before any claim is evaluated, so an
// expired token with a forged signature reports [ErrInvalidSignature], never
// [ErrTokenExpired]. A token is expired from the instant now reaches exp.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	// golang-jwt treats exp as valid while now == exp; close the boundary.
	if !service.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}
