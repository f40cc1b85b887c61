package services

import (
	"context"
	"log/slog"

	"github.com/finfam/family_finance_app/internal/apperrors"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	"github.com/finfam/family_finance_app/internal/middleware"
)

// BaseService provides common functionality for all services: request-scoped
// logging and family (tenant) resolution for the calling user.
type BaseService struct {
	userReader portsrepo.UserReader
}

// GetLogger gets the logger from context or returns a default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ResolveFamilyID looks up the calling user and returns the family they belong
// to. Users without a family cannot touch family-scoped data.
func (s *BaseService) ResolveFamilyID(ctx context.Context, userID string) (string, error) {
	user, err := s.userReader.FindUserByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve calling user",
			slog.String("user_id", userID))
		return "", err
	}
	if user.FamilyID == "" {
		return "", apperrors.ErrNoFamily
	}
	return user.FamilyID, nil
}
