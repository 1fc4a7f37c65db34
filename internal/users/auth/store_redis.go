// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/byteandblog/internal/platform/constants"
)

// compareAndDeleteScript removes KEYS[1] only while it still holds ARGV[1].
var compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOTPStore implements [OTPStore] on Redis so every API replica shares
// one code table.
//
// # Encoding
//
// Each entry is stored as "<code>|<issued-at unix nanos>" under
// auth:otp:<email>. The Redis TTL is housekeeping only; validity is decided
// by the [OTPRegistry].
type RedisOTPStore struct {
	client redis.UniversalClient
}

// NewRedisOTPStore creates a Redis-backed OTP store.
func NewRedisOTPStore(client redis.UniversalClient) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(email string) string {
	return constants.RedisPrefixOTP + email
}

func encodeOTPEntry(entry OTPEntry) string {
	return entry.Code + "|" + strconv.FormatInt(entry.IssuedAt.UnixNano(), 10)
}

func decodeOTPEntry(raw string) (OTPEntry, error) {
	code, nanos, found := strings.Cut(raw, "|")
	if !found {
		return OTPEntry{}, fmt.Errorf("malformed otp entry")
	}

	issuedAt, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return OTPEntry{}, fmt.Errorf("malformed otp timestamp: %w", err)
	}

	return OTPEntry{Code: code, IssuedAt: time.Unix(0, issuedAt)}, nil
}

/*
Put stores the entry, replacing any previous code for email.

Parameters:
  - context: context.Context
  - email: string
  - entry: OTPEntry

Returns:
  - error: Execution errors
*/
func (store *RedisOTPStore) Put(context context.Context, email string, entry OTPEntry) error {
	if err := store.client.Set(context, otpKey(email), encodeOTPEntry(entry), otpHousekeepingTTL).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the live entry for email.

Returns:
  - OTPEntry: The stored entry
  - bool: false when no entry exists
  - error: Connectivity or decoding errors
*/
func (store *RedisOTPStore) Get(context context.Context, email string) (OTPEntry, bool, error) {
	raw, err := store.client.Get(context, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return OTPEntry{}, false, nil
		}
		return OTPEntry{}, false, fmt.Errorf("redis_otp_get_failed: %w", err)
	}

	entry, err := decodeOTPEntry(raw)
	if err != nil {
		return OTPEntry{}, false, fmt.Errorf("redis_otp_decode_failed: %w", err)
	}

	return entry, true, nil
}

/*
CompareAndDelete atomically removes the entry if it still equals expected.

Returns:
  - bool: true when this call deleted the key
  - error: Script execution errors
*/
func (store *RedisOTPStore) CompareAndDelete(context context.Context, email string, expected OTPEntry) (bool, error) {
	deleted, err := compareAndDeleteScript.Run(context, store.client, []string{otpKey(email)}, encodeOTPEntry(expected)).Int()
	if err != nil {
		return false, fmt.Errorf("redis_otp_compare_and_delete_failed: %w", err)
	}
	return deleted == 1, nil
}
