// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/constants"
)

// otpSpace is the number of distinct codes (000000 to 999999).
var otpSpace = big.NewInt(1_000_000)

// OTPRegistry issues and consumes single-use password reset codes.
//
// # Lifecycle
//
// A code is removed on its first successful validation, or on the first
// validation attempt after the window has elapsed. A wrong guess leaves the
// live code in place. Expiry is evaluated lazily; there is no sweeper.
type OTPRegistry struct {
	store    OTPStore
	window   time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// RegistryOption customises an [OTPRegistry].
type RegistryOption func(*OTPRegistry)

// WithRegistryClock overrides the time source.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(registry *OTPRegistry) {
		registry.now = now
	}
}

// WithCodeGenerator overrides code generation.
func WithCodeGenerator(generate func() (string, error)) RegistryOption {
	return func(registry *OTPRegistry) {
		registry.generate = generate
	}
}

// NewOTPRegistry creates a registry over store with the standard window.
func NewOTPRegistry(store OTPStore, opts ...RegistryOption) *OTPRegistry {
	registry := &OTPRegistry{
		store:    store,
		window:   OTPWindow,
		now:      time.Now,
		generate: GenerateOTP,
	}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// GenerateOTP draws a code uniformly from 000000 to 999999 using crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("otp_generate_failed: %w", err)
	}
	return fmt.Sprintf("%0*d", constants.OTPDigits, n.Int64()), nil
}

/*
Issue generates a fresh code for email, replacing any previous one.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The 6-digit code to deliver
  - error: Generation or store failures
*/
func (registry *OTPRegistry) Issue(context context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	code, err := registry.generate()
	if err != nil {
		return "", err
	}

	entry := OTPEntry{Code: code, IssuedAt: registry.now()}
	if err := registry.store.Put(context, email, entry); err != nil {
		return "", fmt.Errorf("otp_store_put_failed: %w", err)
	}

	return code, nil
}

/*
Validate consumes the code for email if it matches and is within the window.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - bool: true only for the caller that actually removed a matching live entry
  - error: Store failures
*/
func (registry *OTPRegistry) Validate(context context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)

	entry, found, err := registry.store.Get(context, email)
	if err != nil {
		return false, fmt.Errorf("otp_store_get_failed: %w", err)
	}

	// 1. Nothing issued (or already consumed)
	if !found {
		return false, nil
	}

	// 2. Expired: remove it so the next attempt sees nothing
	if registry.now().Sub(entry.IssuedAt) > registry.window {
		if _, err := registry.store.CompareAndDelete(context, email, entry); err != nil {
			return false, fmt.Errorf("otp_store_expire_failed: %w", err)
		}
		return false, nil
	}

	// 3. Mismatch leaves the entry intact
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		return false, nil
	}

	// 4. Match: only the caller that removes the entry wins
	removed, err := registry.store.CompareAndDelete(context, email, entry)
	if err != nil {
		return false, fmt.Errorf("otp_store_consume_failed: %w", err)
	}

	return removed, nil
}
