package repositories

import (
	"context"
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's mutable details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserFamily sets the family a user belongs to.
	UpdateUserFamily(ctx context.Context, userID string, familyID string, updaterUserID string, now time.Time) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	// A nil expiry clears the stored token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time, now time.Time) error

	// MarkUserDeleted soft deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deleterUserID string, now time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
