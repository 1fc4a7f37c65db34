// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// # OTP Store (process memory)

type otpShard struct {
	mu      sync.Mutex
	entries map[string]OTPEntry
}

// MemoryOTPStore keeps codes in a fixed set of mutex-guarded shards. Distinct
// emails hash to different shards, so they rarely contend and never share a
// global lock.
type MemoryOTPStore struct {
	shards [otpShardCount]*otpShard
}

// NewMemoryOTPStore creates an empty store.
func NewMemoryOTPStore() *MemoryOTPStore {
	store := &MemoryOTPStore{}
	for i := range store.shards {
		store.shards[i] = &otpShard{entries: make(map[string]OTPEntry)}
	}
	return store
}

func (store *MemoryOTPStore) shard(email string) *otpShard {
	return store.shards[xxhash.Sum64String(email)%otpShardCount]
}

// Put implements [OTPStore].
func (store *MemoryOTPStore) Put(_ context.Context, email string, entry OTPEntry) error {
	shard := store.shard(email)

	shard.mu.Lock()
	shard.entries[email] = entry
	shard.mu.Unlock()

	return nil
}

// Get implements [OTPStore].
func (store *MemoryOTPStore) Get(_ context.Context, email string) (OTPEntry, bool, error) {
	shard := store.shard(email)

	shard.mu.Lock()
	entry, found := shard.entries[email]
	shard.mu.Unlock()

	return entry, found, nil
}

// CompareAndDelete implements [OTPStore].
func (store *MemoryOTPStore) CompareAndDelete(_ context.Context, email string, expected OTPEntry) (bool, error) {
	shard := store.shard(email)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	current, found := shard.entries[email]
	if !found || current.Code != expected.Code || !current.IssuedAt.Equal(expected.IssuedAt) {
		return false, nil
	}

	delete(shard.entries, email)
	return true, nil
}

// # User Repository (process memory)

// MemoryUserRepository is an in-process [UserRepository]. It backs the
// service and handler tests and enforces the same uniqueness rules as the
// database constraints.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*User
}

// NewMemoryUserRepository creates an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]*User)}
}

func cloneUser(user *User) *User {
	clone := *user
	clone.Roles = append([]string(nil), user.Roles...)
	return &clone
}

func (repository *MemoryUserRepository) find(match func(*User) bool) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if match(user) {
			return cloneUser(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

// FindByUsername implements [UserRepository].
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	return repository.find(func(user *User) bool { return user.Username == username })
}

// FindByEmail implements [UserRepository].
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	return repository.find(func(user *User) bool { return strings.EqualFold(user.Email, email) })
}

// ExistsByUsername implements [UserRepository].
func (repository *MemoryUserRepository) ExistsByUsername(context context.Context, username string) (bool, error) {
	_, err := repository.FindByUsername(context, username)
	return err == nil, nil
}

// ExistsByEmail implements [UserRepository].
func (repository *MemoryUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	_, err := repository.FindByEmail(context, email)
	return err == nil, nil
}

// Create implements [UserRepository].
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if existing.Username == user.Username {
			return ErrDuplicateUsername
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}

	repository.nextID++
	user.ID = repository.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	repository.users[user.ID] = cloneUser(user)
	return nil
}

// UpdatePassword implements [UserRepository].
func (repository *MemoryUserRepository) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, found := repository.users[userID]
	if !found {
		return dberr.ErrNotFound
	}

	user.PasswordHash = newHash
	return nil
}
