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
	"github.com/google/uuid"
)

const defaultCurrencyCode = "USD"

type familyService struct {
	BaseService
	familyRepo portsrepo.FamilyRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewFamilyService creates a new family service.
func NewFamilyService(familyRepo portsrepo.FamilyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.FamilySvcFacade {
	return &familyService{
		BaseService: BaseService{userReader: userRepo},
		familyRepo:  familyRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.FamilySvcFacade = (*familyService)(nil)

// CreateFamily creates a family and makes the creator its first member.
func (s *familyService) CreateFamily(ctx context.Context, req dto.CreateFamilyRequest, creatorUserID string) (*domain.Family, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.FamilyID != "" {
		return nil, fmt.Errorf("%w: user already belongs to a family", apperrors.ErrValidation)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	now := time.Now()
	family := domain.Family{
		FamilyID:     uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.familyRepo.SaveFamily(ctx, family); err != nil {
		s.LogError(ctx, err, "Failed to save family",
			slog.String("family_id", family.FamilyID))
		return nil, err
	}

	if err := s.userRepo.UpdateUserFamily(ctx, creatorUserID, family.FamilyID, creatorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to attach creator to new family",
			slog.String("family_id", family.FamilyID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Family created",
		slog.String("family_id", family.FamilyID),
		slog.String("creator_id", creatorUserID))
	return &family, nil
}

// GetMyFamily retrieves the family the calling user belongs to.
func (s *familyService) GetMyFamily(ctx context.Context, userID string) (*domain.Family, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	family, err := s.familyRepo.FindFamilyByID(ctx, familyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find family",
				slog.String("family_id", familyID))
		}
		return nil, err
	}
	return family, nil
}

// AddMember adds an existing user, identified by username, to the caller's
// family. The target must not already belong to a family.
func (s *familyService) AddMember(ctx context.Context, req dto.AddFamilyMemberRequest, callerUserID string) error {
	familyID, err := s.ResolveFamilyID(ctx, callerUserID)
	if err != nil {
		return err
	}

	target, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if target.FamilyID != "" {
		return fmt.Errorf("%w: user already belongs to a family", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdateUserFamily(ctx, target.UserID, familyID, callerUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to add member to family",
			slog.String("family_id", familyID),
			slog.String("user_id", target.UserID))
		return err
	}

	s.LogInfo(ctx, "Member added to family",
		slog.String("family_id", familyID),
		slog.String("user_id", target.UserID))
	return nil
}
