package services

import (
	"context"
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/finfam/family_finance_app/internal/dto"
)

// UserReaderSvc defines read operations for users.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by their unique username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for users.
type UserWriterSvc interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser applies a partial update to a user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// StoreRefreshToken persists the hash of a freshly issued refresh token.
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// FindOrCreateGoogleUser returns the user matching a verified Google
	// profile, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}

// UserSvcFacade combines all user service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
