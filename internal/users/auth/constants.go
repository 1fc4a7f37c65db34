// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/constants"
)

// # Recovery Constraints

const (
	// OTPWindow is how long an issued code stays usable.
	OTPWindow = constants.OTPValidity

	// otpHousekeepingTTL bounds how long an abandoned code lingers in Redis.
	// Validity is still decided by the registry against OTPWindow.
	otpHousekeepingTTL = OTPWindow + time.Minute

	// otpShardCount is the number of independently locked shards in [MemoryOTPStore].
	otpShardCount = 32

	// Registration bounds.
	usernameMinLen = 3
	usernameMaxLen = 64
	passwordMinLen = 6
	passwordMaxLen = 72 // bcrypt ignores bytes beyond 72
)

// # Mail Templates

const (
	otpMailSubject = "Password Reset OTP"
	otpMailBody    = "Your OTP for password reset is: %s\nThis OTP is valid for 5 minutes."
)

// # Response Messages

const (
	msgRegistered    = "User registered successfully"
	msgOTPSent       = "OTP sent to your email"
	msgOTPVerified   = "OTP verified successfully"
	msgPasswordReset = "Password reset successfully"
)
