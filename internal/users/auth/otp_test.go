// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/byteandblog/internal/users/auth"
)

// testClock is a mutable, goroutine-safe time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
}

func (clock *testClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *testClock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	clock.mu.Unlock()
}

// storeFactories runs every registry test against both OTP backends.
func storeFactories(t *testing.T) map[string]func(t *testing.T) auth.OTPStore {
	t.Helper()

	return map[string]func(t *testing.T) auth.OTPStore{
		"memory": func(t *testing.T) auth.OTPStore {
			return auth.NewMemoryOTPStore()
		},
		"redis": func(t *testing.T) auth.OTPStore {
			server := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: server.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return auth.NewRedisOTPStore(client)
		},
	}
}

func TestGenerateOTP_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)

	for i := 0; i < 500; i++ {
		code, err := auth.GenerateOTP()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}

func TestOTPRegistry(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {

			t.Run("single_use", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t))

				code, err := registry.Issue(ctx, "alice@example.com")
				require.NoError(t, err)

				ok, err := registry.Validate(ctx, "alice@example.com", code)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = registry.Validate(ctx, "alice@example.com", code)
				require.NoError(t, err)
				assert.False(t, ok, "a consumed code must not validate twice")
			})

			t.Run("email_case_and_spacing", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t))

				code, err := registry.Issue(ctx, " Carol@Example.COM ")
				require.NoError(t, err)

				ok, err := registry.Validate(ctx, "carol@example.com", code)
				require.NoError(t, err)
				assert.True(t, ok)

				code, err = registry.Issue(ctx, "carol@example.com")
				require.NoError(t, err)

				ok, err = registry.Validate(ctx, "CAROL@example.com", code)
				require.NoError(t, err)
				assert.True(t, ok)
			})

			t.Run("unknown_email", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t))

				ok, err := registry.Validate(ctx, "nobody@example.com", "123456")
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("wrong_code_keeps_entry", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t),
					auth.WithCodeGenerator(func() (string, error) { return "424242", nil }))

				_, err := registry.Issue(ctx, "bob@example.com")
				require.NoError(t, err)

				ok, err := registry.Validate(ctx, "bob@example.com", "000000")
				require.NoError(t, err)
				assert.False(t, ok)

				ok, err = registry.Validate(ctx, "bob@example.com", "424242")
				require.NoError(t, err)
				assert.True(t, ok, "a wrong guess must not burn the live code")
			})

			t.Run("expiry_boundary", func(t *testing.T) {
				clock := newTestClock()
				store := newStore(t)
				registry := auth.NewOTPRegistry(store, auth.WithRegistryClock(clock.Now))

				code, err := registry.Issue(ctx, "carol@example.com")
				require.NoError(t, err)

				clock.Advance(auth.OTPWindow)
				ok, err := registry.Validate(ctx, "carol@example.com", code)
				require.NoError(t, err)
				assert.True(t, ok, "exactly at the window edge the code is still valid")

				code, err = registry.Issue(ctx, "carol@example.com")
				require.NoError(t, err)

				clock.Advance(auth.OTPWindow + time.Second)
				ok, err = registry.Validate(ctx, "carol@example.com", code)
				require.NoError(t, err)
				assert.False(t, ok)

				_, found, err := store.Get(ctx, "carol@example.com")
				require.NoError(t, err)
				assert.False(t, found, "an expired entry is removed on first touch")
			})

			t.Run("reissue_replaces", func(t *testing.T) {
				codes := []string{"111111", "222222"}
				var calls atomic.Int32
				registry := auth.NewOTPRegistry(newStore(t), auth.WithCodeGenerator(func() (string, error) {
					return codes[calls.Add(1)-1], nil
				}))

				_, err := registry.Issue(ctx, "dave@example.com")
				require.NoError(t, err)
				_, err = registry.Issue(ctx, "dave@example.com")
				require.NoError(t, err)

				ok, err := registry.Validate(ctx, "dave@example.com", "111111")
				require.NoError(t, err)
				assert.False(t, ok, "the replaced code is dead")

				ok, err = registry.Validate(ctx, "dave@example.com", "222222")
				require.NoError(t, err)
				assert.True(t, ok)
			})

			t.Run("emails_are_independent", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t))

				first, err := registry.Issue(ctx, "erin@example.com")
				require.NoError(t, err)
				second, err := registry.Issue(ctx, "frank@example.com")
				require.NoError(t, err)

				ok, err := registry.Validate(ctx, "frank@example.com", second)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = registry.Validate(ctx, "erin@example.com", first)
				require.NoError(t, err)
				assert.True(t, ok)
			})

			t.Run("concurrent_validation_single_winner", func(t *testing.T) {
				registry := auth.NewOTPRegistry(newStore(t))

				code, err := registry.Issue(ctx, "grace@example.com")
				require.NoError(t, err)

				const attempts = 32
				var (
					wg      sync.WaitGroup
					winners atomic.Int32
					start   = make(chan struct{})
				)

				for i := 0; i < attempts; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						<-start
						ok, err := registry.Validate(ctx, "grace@example.com", code)
						if err == nil && ok {
							winners.Add(1)
						}
					}()
				}

				close(start)
				wg.Wait()

				assert.Equal(t, int32(1), winners.Load())
			})
		})
	}
}

func TestRedisOTPStore_HousekeepingTTL(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	registry := auth.NewOTPRegistry(auth.NewRedisOTPStore(client))

	_, err := registry.Issue(context.Background(), "Heidi@Example.com")
	require.NoError(t, err)

	assert.True(t, server.Exists("auth:otp:heidi@example.com"))
	assert.Equal(t, auth.OTPWindow+time.Minute, server.TTL("auth:otp:heidi@example.com"))
}
