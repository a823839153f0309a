// ABOUTME: Store interface and data types for gateway credential persistence
// ABOUTME: Defines the User record and the CredentialStore lookup contract

package store

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a requested user does not exist
var ErrUserNotFound = errors.New("user not found")

// User represents a credential record. PasswordHash is a bcrypt hash and
// must never leave the login boundary.
type User struct {
	ID           string
	Username     string
	Role         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CredentialStore resolves usernames to credential records. The gateway
// core only reads; there is no user mutation surface in scope.
type CredentialStore interface {
	// GetUserByUsername returns the user with the given username, or
	// ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]User, error)

	// Close releases the underlying database handle.
	Close() error
}
