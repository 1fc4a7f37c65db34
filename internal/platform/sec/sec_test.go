// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/byteandblog/internal/platform/sec"
)

var testSecret = []byte(strings.Repeat("s", 64))

// fixedClock returns a controllable, second-aligned time source.
func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}

func newService(t *testing.T, now func() time.Time) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "byteandblog.app", 24*time.Hour, sec.WithClock(now))
	require.NoError(t, err)
	return service
}

/*
TestPasswordHasher covers the hash/verify round trip and salt freshness.
*/
func TestPasswordHasher(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	second, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", first)
	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, hasher.Verify("correct horse", first))
	assert.True(t, hasher.Verify("correct horse", second))
	assert.False(t, hasher.Verify("wrong horse", first))
}

/*
TestPasswordHasher_MalformedHash must return false, not panic.
*/
func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	assert.NotPanics(t, func() {
		assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("anything", ""))
	})
}

/*
TestPasswordHasher_CostFallback clamps invalid costs to the default.
*/
func TestPasswordHasher_CostFallback(t *testing.T) {
	hasher := sec.NewPasswordHasher(1)

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

/*
TestTokenService_RoundTrip verifies that issued claims come back intact.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, now := fixedClock(start)
	service := newService(t, now)

	token, err := service.Issue("alice", []string{sec.RoleUser, sec.RoleAdmin})
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, []string{sec.RoleUser, sec.RoleAdmin}, claims.Roles)
	assert.True(t, claims.HasRole(sec.RoleAdmin))
	assert.Equal(t, start, claims.IssuedAt.Time.UTC())
	assert.Equal(t, start.Add(24*time.Hour), claims.ExpiresAt.Time.UTC())
}

/*
TestTokenService_Expiry exercises both sides of the exp boundary.
*/
func TestTokenService_Expiry(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current, now := fixedClock(start)
	service := newService(t, now)

	token, err := service.Issue("alice", sec.DefaultRoles())
	require.NoError(t, err)

	*current = start.Add(24*time.Hour - time.Second)
	_, err = service.Verify(token)
	assert.NoError(t, err, "one second before exp is still valid")

	*current = start.Add(24 * time.Hour)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired, "now == exp is expired")

	*current = start.Add(48 * time.Hour)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Tampered rejects any modification of header, payload or signature.
*/
func TestTokenService_Tampered(t *testing.T) {
	_, now := fixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	service := newService(t, now)

	token, err := service.Issue("alice", sec.DefaultRoles())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Swap in a payload claiming a different subject and the admin role.
	forgedPayload := jwt.NewWithClaims(jwt.SigningMethodHS512, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			Issuer:    "byteandblog.app",
			ExpiresAt: jwt.NewNumericDate(now().Add(time.Hour)),
		},
		Roles: []string{sec.RoleAdmin},
	})
	other, err := forgedPayload.SignedString([]byte("another-secret-another-secret-another-secret-xx"))
	require.NoError(t, err)
	otherParts := strings.Split(other, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"payload_swapped", parts[0] + "." + otherParts[1] + "." + parts[2]},
		{"signature_swapped", parts[0] + "." + parts[1] + "." + otherParts[2]},
		{"signature_truncated", parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-2]},
		{"wrong_key", other},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidSignature)
		})
	}
}

/*
TestTokenService_SignatureBeforeExpiry reports a forged expired token as invalid.
*/
func TestTokenService_SignatureBeforeExpiry(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current, now := fixedClock(start)
	service := newService(t, now)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS512, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    "byteandblog.app",
			ExpiresAt: jwt.NewNumericDate(start.Add(time.Hour)),
		},
	})
	token, err := forged.SignedString([]byte("forged-secret-forged-secret-forged-secret-forged"))
	require.NoError(t, err)

	*current = start.Add(2 * time.Hour)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidSignature)
	assert.NotErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_AlgorithmPinned rejects tokens signed with another HMAC variant or "none".
*/
func TestTokenService_AlgorithmPinned(t *testing.T) {
	_, now := fixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	service := newService(t, now)

	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    "byteandblog.app",
			ExpiresAt: jwt.NewNumericDate(now().Add(time.Hour)),
		},
	}

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = service.Verify(hs256)
	assert.ErrorIs(t, err, sec.ErrInvalidSignature)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.Verify(none)
	assert.ErrorIs(t, err, sec.ErrInvalidSignature)
}

/*
TestNewTokenService_EmptySecret refuses to sign with an empty key.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService(nil, "byteandblog.app", time.Hour)
	assert.ErrorIs(t, err, sec.ErrEmptySecret)
}

/*
TestHasRole checks plain membership.
*/
func TestHasRole(t *testing.T) {
	assert.True(t, sec.HasRole([]string{sec.RoleUser, sec.RoleAdmin}, sec.RoleAdmin))
	assert.False(t, sec.HasRole(sec.DefaultRoles(), sec.RoleAdmin))
	assert.False(t, sec.HasRole(nil, sec.RoleUser))
}
