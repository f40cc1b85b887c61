package services

import (
	"context"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/finfam/family_finance_app/internal/dto"
)

// LiabilityReaderSvc defines read operations for liabilities.
type LiabilityReaderSvc interface {
	// GetLiabilityByID retrieves a liability owned by the caller's family.
	// A liability outside that family surfaces as not found.
	GetLiabilityByID(ctx context.Context, liabilityID string, userID string) (*domain.Liability, error)

	// ListLiabilities retrieves a filtered, paginated envelope of the caller's
	// family liabilities.
	ListLiabilities(ctx context.Context, userID string, params dto.ListLiabilitiesParams) (*dto.ListLiabilitiesResponse, error)

	// GetUpcomingPayments merges unpaid installments due within the window
	// with synthesized next minimum payments for active credit cards, sorted
	// ascending by due date.
	GetUpcomingPayments(ctx context.Context, userID string, days int) ([]domain.UpcomingPayment, error)

	// GetSummary aggregates the caller's family active liabilities in-process.
	GetSummary(ctx context.Context, userID string) (*dto.LiabilitiesSummaryResponse, error)
}

// LiabilityWriterSvc defines write operations for liabilities.
type LiabilityWriterSvc interface {
	// CreateLiability validates and persists a new liability.
	CreateLiability(ctx context.Context, req dto.CreateLiabilityRequest, userID string) (*domain.Liability, error)

	// UpdateLiability applies a partial update after ownership verification.
	UpdateLiability(ctx context.Context, liabilityID string, req dto.UpdateLiabilityRequest, userID string) (*domain.Liability, error)

	// DeleteLiability hard deletes a liability after ownership verification.
	DeleteLiability(ctx context.Context, liabilityID string, userID string) error
}

// InstallmentSvc defines the installment-plan lifecycle operations.
type InstallmentSvc interface {
	// CreateInstallmentPlan atomically creates a plan and its monthly
	// installment schedule under a liability.
	CreateInstallmentPlan(ctx context.Context, liabilityID string, req dto.CreateInstallmentPlanRequest, userID string) (*domain.InstallmentPlan, []domain.Installment, error)

	// GetInstallmentPlan retrieves a plan and its installments under a
	// liability owned by the caller's family.
	GetInstallmentPlan(ctx context.Context, liabilityID string, planID string, userID string) (*domain.InstallmentPlan, []domain.Installment, error)

	// GetInstallment retrieves a single installment under a liability owned by
	// the caller's family.
	GetInstallment(ctx context.Context, liabilityID string, installmentID string, userID string) (*domain.Installment, error)

	// MarkInstallmentPaid transitions one installment to paid exactly once.
	// A concurrent duplicate call fails with a validation error.
	MarkInstallmentPaid(ctx context.Context, liabilityID string, installmentID string, transactionID *string, userID string) (*domain.Installment, *domain.InstallmentPlan, error)
}

// BNPLDetectorSvc matches transaction text against known BNPL providers.
type BNPLDetectorSvc interface {
	// DetectBNPL returns the first matching provider, or nil when none match.
	DetectBNPL(ctx context.Context, description string, merchantName string) *domain.BNPLMatch
}

// LiabilitySvcFacade combines all liability service interfaces.
type LiabilitySvcFacade interface {
	LiabilityReaderSvc
	LiabilityWriterSvc
	InstallmentSvc
	BNPLDetectorSvc
}
