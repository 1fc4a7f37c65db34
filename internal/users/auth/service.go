// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
	"github.com/taibuivan/byteandblog/internal/platform/mailer"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
	"github.com/taibuivan/byteandblog/internal/platform/validate"
)

// # Contracts & Types

// PasswordHasher hashes and checks passwords. [*sec.PasswordHasher] satisfies it.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// TokenIssuer signs bearer tokens. [*sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(subject string, roles []string) (string, error)
}

// Service implements the authentication and recovery use cases.
//
// # Concurrency
//
// Service holds no mutable state of its own. Concurrent requests meet only
// in the stores: the credential store's unique constraints and the
// [OTPRegistry]'s compare-and-delete.
type Service struct {
	userRepository UserRepository
	otpRegistry    *OTPRegistry
	hasher         PasswordHasher
	tokenIssuer    TokenIssuer
	mailSender     mailer.Sender
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	otps *OTPRegistry,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mail mailer.Sender,
) *Service {
	return &Service{
		userRepository: userRepo,
		otpRegistry:    otps,
		hasher:         hasher,
		tokenIssuer:    tokens,
		mailSender:     mail,
	}
}

// normalizeEmail makes lookups and OTP keys case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword applies the length rules shared by register and reset.
func validatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).
		MinLen(field, password, passwordMinLen).
		Custom(field, len(password) > passwordMaxLen, fmt.Sprintf("Maximum %d bytes", passwordMaxLen))
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Username and email must both be unused. The new account gets
the default USER role. No token is issued.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ErrDuplicateUsername, ErrDuplicateEmail, validation or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, usernameMinLen).
		MaxLen(FieldUsername, input.Username, usernameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)
	validatePassword(validator, FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	// Username first, matching the order clients have always seen.
	taken, err := service.userRepository.ExistsByUsername(context, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}
	if taken {
		logger.WarnContext(context, "auth_register_duplicate_username", slog.String("username", input.Username))
		return nil, ErrDuplicateUsername
	}

	taken, err = service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}
	if taken {
		logger.WarnContext(context, "auth_register_duplicate_email", slog.String("username", input.Username))
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Roles:        sec.DefaultRoles(),
	}

	// A concurrent registration can still win the race; the store reports it
	// as the same duplicate error.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	logger.InfoContext(context, "auth_register_succeeded",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

/*
Login checks credentials and issues a bearer token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token and user ID
  - error: ErrUserNotFound, ErrInvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	user, err := service.userRepository.FindByUsername(context, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			logger.WarnContext(context, "auth_login_unknown_user", slog.String("username", input.Username))
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		logger.WarnContext(context, "auth_login_bad_password", slog.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokenIssuer.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	logger.InfoContext(context, "auth_login_succeeded",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID),
	)

	return &LoginResult{Token: token, UserID: user.ID}, nil
}

// # Password Recovery

/*
ForgotPassword issues a reset code for a registered email and mails it.

Description: The code stays issued even when delivery fails, so a retry of
the mail (or a support-assisted reset) can still use it.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: ErrEmailNotFound, ErrDeliveryFailure or internal failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	email = normalizeEmail(email)

	validator := &validate.Validator{}
	if err := validator.Required(FieldEmail, email).Err(); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)

	if _, err := service.userRepository.FindByEmail(context, email); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			logger.WarnContext(context, "auth_forgot_password_unknown_email")
			return ErrEmailNotFound
		}
		return fmt.Errorf("auth_service_forgot_password_lookup_failed: %w", err)
	}

	code, err := service.otpRegistry.Issue(context, email)
	if err != nil {
		return fmt.Errorf("auth_service_otp_issue_failed: %w", err)
	}

	message := mailer.Message{
		To:      email,
		Subject: otpMailSubject,
		Body:    fmt.Sprintf(otpMailBody, code),
	}

	if err := service.mailSender.Send(context, message); err != nil {
		logger.ErrorContext(context, "auth_otp_delivery_failed", slog.Any("error", err))
		return ErrDeliveryFailure.WithCause(err)
	}

	logger.InfoContext(context, "auth_otp_sent")
	return nil
}

/*
VerifyOTP consumes the reset code for email.

Description: Succeeds at most once per issued code. No token is issued.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - error: ErrOTPInvalidOrExpired or store failures
*/
func (service *Service) VerifyOTP(context context.Context, email, code string) error {
	email = normalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldOTP, code)

	if err := validator.Err(); err != nil {
		return err
	}

	valid, err := service.otpRegistry.Validate(context, email, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("auth_service_otp_validate_failed: %w", err)
	}

	if !valid {
		ctxutil.GetLogger(context).WarnContext(context, "auth_otp_rejected")
		return ErrOTPInvalidOrExpired
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_otp_verified")
	return nil
}

// ResetPasswordInput holds the new credentials for a recovery.
type ResetPasswordInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

/*
ResetPassword replaces the password of the account owning email.

Description: Checks run in order: email present, account exists, password
equals its confirmation, then the password length rules. On any failure the
stored hash is left untouched.

Parameters:
  - context: context.Context
  - input: ResetPasswordInput

Returns:
  - error: ErrEmailNotFound, ErrPasswordMismatch, validation or storage errors
*/
func (service *Service) ResetPassword(context context.Context, input ResetPasswordInput) error {
	input.Email = normalizeEmail(input.Email)

	validator := &validate.Validator{}
	if err := validator.Required(FieldEmail, input.Email).Err(); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)

	// Unknown email and mismatch are reported before the password rules.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			logger.WarnContext(context, "auth_reset_password_unknown_email")
			return ErrEmailNotFound
		}
		return fmt.Errorf("auth_service_reset_password_lookup_failed: %w", err)
	}

	if input.Password != input.ConfirmPassword {
		logger.WarnContext(context, "auth_reset_password_mismatch", slog.Int64("user_id", user.ID))
		return ErrPasswordMismatch
	}

	validatePassword(validator, FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	logger.InfoContext(context, "auth_reset_password_succeeded", slog.Int64("user_id", user.ID))
	return nil
}
