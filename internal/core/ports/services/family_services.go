package services

import (
	"context"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/finfam/family_finance_app/internal/dto"
)

// FamilySvcFacade defines operations on the family tenancy unit.
type FamilySvcFacade interface {
	// CreateFamily creates a family and makes the creator its first member.
	// Fails with a validation error if the creator already belongs to one.
	CreateFamily(ctx context.Context, req dto.CreateFamilyRequest, creatorUserID string) (*domain.Family, error)

	// GetMyFamily retrieves the family the calling user belongs to.
	GetMyFamily(ctx context.Context, userID string) (*domain.Family, error)

	// AddMember adds an existing user (by username) to the caller's family.
	AddMember(ctx context.Context, req dto.AddFamilyMemberRequest, callerUserID string) error
}
