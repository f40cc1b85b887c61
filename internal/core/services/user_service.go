package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/finfam/family_finance_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{userReader: userRepo},
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "", // Self-registration has no creating user yet
			LastUpdatedAt: now,
			LastUpdatedBy: "",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user",
				slog.String("username", req.Username))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username",
				slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update to a user. Only the user themselves may
// update their profile.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	if userID != updaterUserID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user",
			slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes a user.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	if userID != deleterUserID {
		return apperrors.ErrForbidden
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, deleterUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user",
				slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// StoreRefreshToken persists the hash and expiry of a newly issued token.
func (s *userService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token",
			slog.String("user_id", userID))
		return err
	}
	return nil
}

// ClearRefreshToken invalidates the stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token",
			slog.String("user_id", userID))
		return err
	}
	return nil
}

// FindOrCreateGoogleUser returns the user matching a verified Google profile,
// creating one on first sign-in. The Google account email doubles as the
// username.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.Email == "" {
		return nil, fmt.Errorf("%w: google profile has no email", apperrors.ErrValidation)
	}
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google email is not verified", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByUsername(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up google user",
			slog.String("email", info.Email))
		return nil, err
	}

	// First sign-in: provision a user with an unusable password.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder secret: %w", err)
	}
	hash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder secret: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Username:     info.Email,
		PasswordHash: hash,
		Name:         info.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision google user",
			slog.String("email", info.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User provisioned from google sign-in",
		slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
