// Package credentials persists usernames and password hashes.
package credentials

import (
	"context"
	"errors"

	"aurevo-menu/models"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrNotFound      = errors.New("user not found")
)

// Store is the single-table credential store. Implementations must be safe
// for concurrent use.
type Store interface {
	// Create inserts a user and returns it with its assigned id, or
	// ErrUsernameTaken when the username is already present.
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	// FindByUsername returns ErrNotFound for unknown usernames.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Close() error
}
