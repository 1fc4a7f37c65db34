// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/byteandblog/internal/platform/database/schema"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] over users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectUserQuery builds the canonical projection filtered by one column.
func selectUserQuery(column string) string {
	return fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Roles, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table, column,
	)
}

func (repository *PostgresUserRepository) findOne(context context.Context, column, value, action string) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, selectUserQuery(column), value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Roles,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Username, username, "postgres_user_repo_find_by_username_failed")
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email, strings.ToLower(email), "postgres_user_repo_find_by_email_failed")
}

func (repository *PostgresUserRepository) exists(context context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.UserAccount.Table, column)

	var exists bool
	if err := repository.pool.QueryRow(context, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}
	return exists, nil
}

// ExistsByUsername implements [UserRepository].
func (repository *PostgresUserRepository) ExistsByUsername(context context.Context, username string) (bool, error) {
	return repository.exists(context, schema.UserAccount.Username, username)
}

// ExistsByEmail implements [UserRepository].
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	return repository.exists(context, schema.UserAccount.Email, strings.ToLower(email))
}

/*
Create persists a new user record and fills in ID and CreatedAt.

Description: The unique constraints on username and email are the final
arbiter when two registrations race past the service's existence checks.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrDuplicateUsername / ErrDuplicateEmail, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.Roles,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Username,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Roles,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		switch dberr.ConstraintName(err) {
		case schema.UserAccountUsernameKey:
			return ErrDuplicateUsername.WithCause(err)
		case schema.UserAccountEmailKey:
			return ErrDuplicateEmail.WithCause(err)
		}
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
UpdatePassword replaces the password hash of one account.

Parameters:
  - context: context.Context
  - userID: int64
  - newHash: string

Returns:
  - error: dberr.ErrNotFound if no row matched, or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_password_failed")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
