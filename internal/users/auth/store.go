// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups of a missing account return an error matching [dberr.ErrNotFound].
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(context context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken.
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a brand-new account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrDuplicateUsername / ErrDuplicateEmail when a concurrent
		    registration won the uniqueness race, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error
}

// # One-Time Code Storage

// OTPEntry is the live reset code for one email.
type OTPEntry struct {
	Code     string
	IssuedAt time.Time
}

// OTPStore holds at most one [OTPEntry] per email.
//
// Stores never decide expiry and use email as given. The [OTPRegistry]
// normalizes the email, evaluates the window on read and removes stale
// entries through CompareAndDelete.
type OTPStore interface {

	// Put replaces any existing entry for email.
	Put(context context.Context, email string, entry OTPEntry) error

	// Get returns the entry for email and whether one exists.
	Get(context context.Context, email string) (OTPEntry, bool, error)

	// CompareAndDelete removes the entry only if it still equals expected.
	// It reports whether this call performed the removal, so of several
	// concurrent callers presenting the same entry exactly one sees true.
	CompareAndDelete(context context.Context, email string, expected OTPEntry) (bool, error)
}
