// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
	"github.com/taibuivan/byteandblog/internal/platform/mailer"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
	"github.com/taibuivan/byteandblog/internal/users/auth"
)

// fixture wires a Service over in-memory stores.
type fixture struct {
	service *auth.Service
	users   *auth.MemoryUserRepository
	otps    *auth.OTPRegistry
	tokens  *sec.TokenService
	mail    *mailer.Recorder
	clock   *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := newTestClock()
	tokens, err := sec.NewTokenService([]byte(strings.Repeat("t", 64)), "byteandblog.app", 24*time.Hour,
		sec.WithClock(clock.Now))
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository()
	otps := auth.NewOTPRegistry(auth.NewMemoryOTPStore(), auth.WithRegistryClock(clock.Now))
	mail := &mailer.Recorder{}

	return &fixture{
		service: auth.NewService(users, otps, sec.NewPasswordHasher(bcrypt.MinCost), tokens, mail),
		users:   users,
		otps:    otps,
		tokens:  tokens,
		mail:    mail,
		clock:   clock,
	}
}

func (f *fixture) register(t *testing.T, username, email, password string) *auth.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// mailedCode extracts the OTP from the last recovery email.
func (f *fixture) mailedCode(t *testing.T) string {
	t.Helper()
	msg, ok := f.mail.Last()
	require.True(t, ok, "no mail was sent")

	const prefix = "Your OTP for password reset is: "
	start := strings.Index(msg.Body, prefix)
	require.GreaterOrEqual(t, start, 0)
	return msg.Body[start+len(prefix) : start+len(prefix)+6]
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

/*
TestService_Register covers creation, role assignment and both uniqueness rules.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "alice", "Alice@Example.com", "s3cret-pw")
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, []string{sec.RoleUser}, user.Roles)
	assert.NotEqual(t, "s3cret-pw", user.PasswordHash)

	_, err := f.service.Register(ctx, auth.RegisterInput{Username: "alice", Email: "other@example.com", Password: "other-pw"})
	assert.ErrorIs(t, err, auth.ErrDuplicateUsername)

	// The rejected attempt leaves the original account untouched.
	login, err := f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "s3cret-pw"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, login.UserID)

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "other-pw"})
	assert.Error(t, err)

	stored, err := f.users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, "alice@example.com", stored.Email)

	_, err = f.users.FindByEmail(ctx, "other@example.com")
	assert.Error(t, err)

	_, err = f.service.Register(ctx, auth.RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	_, err = f.service.Register(ctx, auth.RegisterInput{Username: "al", Email: "not-an-email", Password: "123"})
	assertCode(t, err, "VALIDATION_ERROR")
	assert.Len(t, apperr.As(err).Details, 3)
}

/*
TestService_Register_Concurrent lets many goroutines race for one username.
*/
func TestService_Register_Concurrent(t *testing.T) {
	f := newFixture(t)

	const racers = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.service.Register(context.Background(), auth.RegisterInput{
				Username: "racer",
				Email:    "racer" + string(rune('a'+i)) + "@example.com",
				Password: "s3cret-pw",
			})
			if err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, auth.ErrDuplicateUsername)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

/*
TestService_Login covers the three login outcomes and the issued token's claims.
*/
func TestService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "alice", "alice@example.com", "s3cret-pw")

	result, err := f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "s3cret-pw"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)

	claims, err := f.tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, []string{sec.RoleUser}, claims.Roles)
	assert.Equal(t, f.clock.Now().Add(24*time.Hour), claims.ExpiresAt.Time.UTC())

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "ghost", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "wrong-pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

/*
TestService_ForgotPassword verifies the mail content and the unknown-email path.
*/
func TestService_ForgotPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "s3cret-pw")

	err := f.service.ForgotPassword(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, auth.ErrEmailNotFound)
	assert.Empty(t, f.mail.Sent())

	require.NoError(t, f.service.ForgotPassword(ctx, "ALICE@example.com"))

	msg, ok := f.mail.Last()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Password Reset OTP", msg.Subject)
	assert.Contains(t, msg.Body, "valid for 5 minutes")
	assert.Regexp(t, `^[0-9]{6}$`, f.mailedCode(t))
}

/*
TestService_ForgotPassword_DeliveryFailure reports DELIVERY_FAILURE but keeps the code issued.
*/
func TestService_ForgotPassword_DeliveryFailure(t *testing.T) {
	clock := newTestClock()
	users := auth.NewMemoryUserRepository()
	otps := auth.NewOTPRegistry(auth.NewMemoryOTPStore(),
		auth.WithRegistryClock(clock.Now),
		auth.WithCodeGenerator(func() (string, error) { return "777777", nil }))
	tokens, err := sec.NewTokenService([]byte(strings.Repeat("t", 64)), "byteandblog.app", time.Hour)
	require.NoError(t, err)

	mail := &mailer.Recorder{Err: errors.New("smtp: 421 service not available")}
	service := auth.NewService(users, otps, sec.NewPasswordHasher(bcrypt.MinCost), tokens, mail)

	_, err = service.Register(context.Background(), auth.RegisterInput{Username: "bob", Email: "bob@example.com", Password: "s3cret-pw"})
	require.NoError(t, err)

	err = service.ForgotPassword(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, auth.ErrDeliveryFailure)
	assert.Equal(t, 500, apperr.As(err).HTTPStatus)
	assert.NotContains(t, apperr.As(err).Message, "421", "relay details stay server-side")

	require.NoError(t, service.VerifyOTP(context.Background(), "bob@example.com", "777777"))
}

/*
TestService_VerifyOTP consumes the mailed code exactly once.
*/
func TestService_VerifyOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "s3cret-pw")

	require.NoError(t, f.service.ForgotPassword(ctx, "alice@example.com"))
	code := f.mailedCode(t)

	require.NoError(t, f.service.VerifyOTP(ctx, "alice@example.com", code))
	assert.ErrorIs(t, f.service.VerifyOTP(ctx, "alice@example.com", code), auth.ErrOTPInvalidOrExpired)
}

/*
TestService_VerifyOTP_Expired rejects a code presented after the window.
*/
func TestService_VerifyOTP_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "s3cret-pw")

	require.NoError(t, f.service.ForgotPassword(ctx, "alice@example.com"))
	code := f.mailedCode(t)

	f.clock.Advance(5*time.Minute + time.Millisecond)
	assert.ErrorIs(t, f.service.VerifyOTP(ctx, "alice@example.com", code), auth.ErrOTPInvalidOrExpired)
}

/*
TestService_ResetPassword covers mismatch (hash untouched), success and unknown email.
*/
func TestService_ResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "old-password")

	before, err := f.users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	err = f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "alice@example.com",
		Password:        "new-password",
		ConfirmPassword: "new-passwort",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)

	after, err := f.users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	err = f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "ghost@example.com",
		Password:        "new-password",
		ConfirmPassword: "new-password",
	})
	assert.ErrorIs(t, err, auth.ErrEmailNotFound)

	require.NoError(t, f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "alice@example.com",
		Password:        "new-password",
		ConfirmPassword: "new-password",
	}))

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "old-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "new-password"})
	assert.NoError(t, err)
}

/*
TestService_ResetPassword_CheckOrder reports account and confirmation errors
ahead of the password length rules.
*/
func TestService_ResetPassword_CheckOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com", "old-password")

	err := f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "ghost@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	assert.ErrorIs(t, err, auth.ErrEmailNotFound)

	err = f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "alice@example.com",
		Password:        "abc",
		ConfirmPassword: "abd",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)

	err = f.service.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:           "alice@example.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	assertCode(t, err, "VALIDATION_ERROR")

	err = f.service.ResetPassword(ctx, auth.ResetPasswordInput{Password: "abc", ConfirmPassword: "abc"})
	assertCode(t, err, "VALIDATION_ERROR")

	_, err = f.service.Login(ctx, auth.LoginInput{Username: "alice", Password: "old-password"})
	assert.NoError(t, err)
}
