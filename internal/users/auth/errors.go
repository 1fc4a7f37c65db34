// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
)

// # Domain Errors
//
// Callers match these with errors.Is; [apperr.AppError.Is] compares codes, so
// a copy carrying a cause still matches its sentinel.

var (
	ErrDuplicateUsername = apperr.BadRequest("DUPLICATE_USERNAME", "Username is already taken")
	ErrDuplicateEmail    = apperr.BadRequest("DUPLICATE_EMAIL", "Email is already in use")

	ErrUserNotFound       = apperr.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	ErrInvalidCredentials = apperr.New("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)

	ErrEmailNotFound       = apperr.BadRequest("EMAIL_NOT_FOUND", "Email not found")
	ErrOTPInvalidOrExpired = apperr.BadRequest("OTP_INVALID_OR_EXPIRED", "Invalid or expired OTP")
	ErrPasswordMismatch    = apperr.BadRequest("PASSWORD_MISMATCH", "Passwords do not match")

	ErrDeliveryFailure = apperr.New("DELIVERY_FAILURE", "Failed to send OTP email", http.StatusInternalServerError)
)
