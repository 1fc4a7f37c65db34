// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements stateless authentication and OTP-verified password
recovery.

# Flows

  - Login: username + password, checked against a bcrypt hash, answered with
    a signed bearer token. No server-side session exists.
  - Recovery: email, then a 6-digit one-time code mailed to the owner, then
    a verification step and a password reset.

# Architecture

  - Service: orchestrates the use cases over the injected stores.
  - UserRepository: the credential store (PostgreSQL, or memory in tests).
  - OTPRegistry: single-use codes over an [OTPStore] (sharded memory map or Redis).
  - Handler: the /api/auth HTTP surface.
*/
package auth

import "time"

// # Domain Entities

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialised.
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// # Field Identifiers

// Field names used in validation errors and request bodies.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldOTP             = "otp"
	FieldConfirmPassword = "confirmPassword"
)
