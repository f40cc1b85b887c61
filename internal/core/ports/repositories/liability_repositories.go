package repositories

import (
	"context"
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
)

// ListLiabilitiesFilter narrows and pages a liability listing.
type ListLiabilitiesFilter struct {
	Status *domain.LiabilityStatus
	Type   *domain.LiabilityType
	Limit  int
	Offset int
}

// LiabilityReader defines read operations for liability data.
type LiabilityReader interface {
	// FindLiabilityByID retrieves a liability by its unique identifier.
	FindLiabilityByID(ctx context.Context, liabilityID string) (*domain.Liability, error)

	// ListLiabilities retrieves a filtered page of a family's liabilities plus
	// the total number of rows matching the filter.
	ListLiabilities(ctx context.Context, familyID string, filter ListLiabilitiesFilter) ([]domain.Liability, int64, error)

	// ListActiveLiabilities retrieves all ACTIVE liabilities of a family.
	ListActiveLiabilities(ctx context.Context, familyID string) ([]domain.Liability, error)
}

// LiabilityWriter defines write operations for liability data.
type LiabilityWriter interface {
	// SaveLiability persists a new liability.
	SaveLiability(ctx context.Context, liability domain.Liability) error

	// UpdateLiability updates an existing liability.
	UpdateLiability(ctx context.Context, liability domain.Liability) error

	// DeleteLiability hard deletes a liability and its installment plans.
	DeleteLiability(ctx context.Context, liabilityID string) error
}

// InstallmentRepository defines operations on installment plans and their
// installments.
type InstallmentRepository interface {
	// SaveInstallmentPlan atomically persists a plan together with its full
	// set of installment rows; either all rows exist afterwards or none do.
	SaveInstallmentPlan(ctx context.Context, plan domain.InstallmentPlan, installments []domain.Installment) error

	// FindPlanByID retrieves an installment plan by its unique identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.InstallmentPlan, error)

	// FindInstallmentsByPlanID retrieves a plan's installments ordered by
	// installment number.
	FindInstallmentsByPlanID(ctx context.Context, planID string) ([]domain.Installment, error)

	// FindInstallmentForLiability retrieves an installment only if it belongs
	// to a plan under the given liability.
	FindInstallmentForLiability(ctx context.Context, installmentID string, liabilityID string) (*domain.Installment, error)

	// MarkInstallmentPaid transitions an installment to paid inside a single
	// database transaction: conditional update guarded on is_paid = false,
	// plan counter decrement, paid-off flip when the counter reaches zero, and
	// liability balance decrement. Returns the updated installment and plan.
	// A lost update race (installment already paid) surfaces as a validation
	// error.
	MarkInstallmentPaid(ctx context.Context, liabilityID string, installmentID string, transactionID *string, userID string, now time.Time) (*domain.Installment, *domain.InstallmentPlan, error)

	// FindUnpaidInstallmentsDue retrieves all unpaid installments across the
	// family's ACTIVE liabilities with a due date on or before the given
	// cutoff, joined with their liability, ordered by due date.
	FindUnpaidInstallmentsDue(ctx context.Context, familyID string, before time.Time) ([]domain.InstallmentDue, error)
}

// LiabilityRepositoryFacade combines all liability repository interfaces.
type LiabilityRepositoryFacade interface {
	LiabilityReader
	LiabilityWriter
	InstallmentRepository
}
