package repositories

import (
	"context"

	"github.com/finfam/family_finance_app/internal/core/domain"
)

// FamilyReader defines read operations for family data.
type FamilyReader interface {
	// FindFamilyByID retrieves a family by its unique identifier.
	FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error)
}

// FamilyWriter defines write operations for family data.
type FamilyWriter interface {
	// SaveFamily persists a new family.
	SaveFamily(ctx context.Context, family domain.Family) error
}

// FamilyRepositoryFacade combines all family repository interfaces.
type FamilyRepositoryFacade interface {
	FamilyReader
	FamilyWriter
}
