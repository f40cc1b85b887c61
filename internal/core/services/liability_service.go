package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/finfam/family_finance_app/internal/utils/schedule"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type liabilityService struct {
	BaseService
	liabilityRepo portsrepo.LiabilityRepositoryFacade
	accountRepo   portsrepo.AccountReader
}

// NewLiabilityService creates a new liability service.
func NewLiabilityService(
	liabilityRepo portsrepo.LiabilityRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	userRepo portsrepo.UserReader,
) portssvc.LiabilitySvcFacade {
	return &liabilityService{
		BaseService:   BaseService{userReader: userRepo},
		liabilityRepo: liabilityRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.LiabilitySvcFacade = (*liabilityService)(nil)

// validateTypeRequirements enforces the type-conditional field requirements.
func validateTypeRequirements(liabilityType domain.LiabilityType, creditLimit, originalAmount *decimal.Decimal, provider string) error {
	switch liabilityType {
	case domain.CreditCard:
		if creditLimit == nil || !creditLimit.IsPositive() {
			return fmt.Errorf("%w: creditLimit is required and must be positive for CREDIT_CARD liabilities", apperrors.ErrValidation)
		}
	case domain.BNPL, domain.Loan, domain.Mortgage:
		if originalAmount == nil || !originalAmount.IsPositive() {
			return fmt.Errorf("%w: originalAmount is required and must be positive for %s liabilities", apperrors.ErrValidation, liabilityType)
		}
		if liabilityType == domain.BNPL && provider == "" {
			return fmt.Errorf("%w: provider is required for BNPL liabilities", apperrors.ErrValidation)
		}
	}
	return nil
}

// verifyLinkedAccount checks that a linked payment account exists and belongs
// to the same family. An account outside the family surfaces as not found.
func (s *liabilityService) verifyLinkedAccount(ctx context.Context, accountID string, familyID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: linked account not found", apperrors.ErrNotFound)
		}
		return err
	}
	if account.FamilyID != familyID {
		return fmt.Errorf("%w: linked account not found", apperrors.ErrNotFound)
	}
	return nil
}

// CreateLiability validates and persists a new liability in the caller's family.
func (s *liabilityService) CreateLiability(ctx context.Context, req dto.CreateLiabilityRequest, userID string) (*domain.Liability, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}

	provider := ""
	if req.Provider != nil {
		provider = *req.Provider
	}
	if err := validateTypeRequirements(req.LiabilityType, req.CreditLimit, req.OriginalAmount, provider); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if err := s.verifyLinkedAccount(ctx, *req.AccountID, familyID); err != nil {
			return nil, err
		}
	}

	status := domain.LiabilityActive
	if req.Status != nil {
		status = *req.Status
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}
	balance := decimal.Zero
	if req.CurrentBalance != nil {
		balance = *req.CurrentBalance
	}

	now := time.Now()
	liability := domain.Liability{
		LiabilityID:       uuid.NewString(),
		FamilyID:          familyID,
		LiabilityType:     req.LiabilityType,
		Name:              req.Name,
		Status:            status,
		CurrentBalance:    balance,
		CreditLimit:       req.CreditLimit,
		OriginalAmount:    req.OriginalAmount,
		CurrencyCode:      currency,
		InterestRate:      req.InterestRate,
		MinimumPayment:    req.MinimumPayment,
		BillingCycleDay:   req.BillingCycleDay,
		PaymentDueDay:     req.PaymentDueDay,
		StatementCloseDay: req.StatementCloseDay,
		Provider:          provider,
		PurchaseDate:      req.PurchaseDate,
		Metadata:          req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.AccountID != nil {
		liability.AccountID = *req.AccountID
	}
	if req.ExternalID != nil {
		liability.ExternalID = *req.ExternalID
	}

	if err := s.liabilityRepo.SaveLiability(ctx, liability); err != nil {
		s.LogError(ctx, err, "Failed to save liability",
			slog.String("liability_id", liability.LiabilityID))
		return nil, err
	}

	s.LogInfo(ctx, "Liability created",
		slog.String("liability_id", liability.LiabilityID),
		slog.String("family_id", familyID),
		slog.String("type", string(liability.LiabilityType)))
	return &liability, nil
}

// GetLiabilityByID retrieves a liability owned by the caller's family. A
// liability in another family surfaces as not found, never as forbidden.
func (s *liabilityService) GetLiabilityByID(ctx context.Context, liabilityID string, userID string) (*domain.Liability, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	liability, err := s.liabilityRepo.FindLiabilityByID(ctx, liabilityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find liability",
				slog.String("liability_id", liabilityID))
		}
		return nil, err
	}
	if liability.FamilyID != familyID {
		return nil, apperrors.ErrNotFound
	}
	return liability, nil
}

// ListLiabilities retrieves a filtered, paginated envelope of the caller's
// family liabilities.
func (s *liabilityService) ListLiabilities(ctx context.Context, userID string, params dto.ListLiabilitiesParams) (*dto.ListLiabilitiesResponse, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ListLiabilitiesFilter{
		Status: params.Status,
		Type:   params.Type,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	liabilities, total, err := s.liabilityRepo.ListLiabilities(ctx, familyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list liabilities",
			slog.String("family_id", familyID))
		return nil, err
	}

	resp := &dto.ListLiabilitiesResponse{
		Liabilities: make([]dto.LiabilityResponse, len(liabilities)),
		Total:       total,
		HasMore:     int64(params.Offset+len(liabilities)) < total,
		Limit:       params.Limit,
		Offset:      params.Offset,
	}
	for i := range liabilities {
		resp.Liabilities[i] = dto.ToLiabilityResponse(&liabilities[i])
	}
	return resp, nil
}

// UpdateLiability applies a partial update after ownership verification.
func (s *liabilityService) UpdateLiability(ctx context.Context, liabilityID string, req dto.UpdateLiabilityRequest, userID string) (*domain.Liability, error) {
	liability, err := s.GetLiabilityByID(ctx, liabilityID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		liability.Name = *req.Name
	}
	if req.Status != nil {
		liability.Status = *req.Status
	}
	if req.CurrentBalance != nil {
		liability.CurrentBalance = *req.CurrentBalance
	}
	if req.CreditLimit != nil {
		liability.CreditLimit = req.CreditLimit
	}
	if req.OriginalAmount != nil {
		liability.OriginalAmount = req.OriginalAmount
	}
	if req.InterestRate != nil {
		liability.InterestRate = req.InterestRate
	}
	if req.MinimumPayment != nil {
		liability.MinimumPayment = req.MinimumPayment
	}
	if req.BillingCycleDay != nil {
		liability.BillingCycleDay = req.BillingCycleDay
	}
	if req.PaymentDueDay != nil {
		liability.PaymentDueDay = req.PaymentDueDay
	}
	if req.StatementCloseDay != nil {
		liability.StatementCloseDay = req.StatementCloseDay
	}
	if req.Provider != nil {
		liability.Provider = *req.Provider
	}
	if req.ExternalID != nil {
		liability.ExternalID = *req.ExternalID
	}
	if req.Metadata != nil {
		liability.Metadata = req.Metadata
	}
	if req.AccountID != nil {
		if err := s.verifyLinkedAccount(ctx, *req.AccountID, liability.FamilyID); err != nil {
			return nil, err
		}
		liability.AccountID = *req.AccountID
	}

	// The updated record must still satisfy the type-conditional requirements.
	if err := validateTypeRequirements(liability.LiabilityType, liability.CreditLimit, liability.OriginalAmount, liability.Provider); err != nil {
		return nil, err
	}

	liability.LastUpdatedAt = time.Now()
	liability.LastUpdatedBy = userID

	if err := s.liabilityRepo.UpdateLiability(ctx, *liability); err != nil {
		s.LogError(ctx, err, "Failed to update liability",
			slog.String("liability_id", liabilityID))
		return nil, err
	}
	return liability, nil
}

// DeleteLiability hard deletes a liability after ownership verification. Its
// installment plans and installments cascade away with it.
func (s *liabilityService) DeleteLiability(ctx context.Context, liabilityID string, userID string) error {
	if _, err := s.GetLiabilityByID(ctx, liabilityID, userID); err != nil {
		return err
	}
	if err := s.liabilityRepo.DeleteLiability(ctx, liabilityID); err != nil {
		s.LogError(ctx, err, "Failed to delete liability",
			slog.String("liability_id", liabilityID))
		return err
	}
	s.LogInfo(ctx, "Liability deleted", slog.String("liability_id", liabilityID))
	return nil
}

// CreateInstallmentPlan atomically creates a plan and its monthly installment
// schedule under a liability. Due dates step by calendar month from the start
// date, clamping to short months.
func (s *liabilityService) CreateInstallmentPlan(ctx context.Context, liabilityID string, req dto.CreateInstallmentPlanRequest, userID string) (*domain.InstallmentPlan, []domain.Installment, error) {
	liability, err := s.GetLiabilityByID(ctx, liabilityID, userID)
	if err != nil {
		return nil, nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = liability.CurrencyCode
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	plan := domain.InstallmentPlan{
		PlanID:                uuid.NewString(),
		LiabilityID:           liabilityID,
		TotalAmount:           req.TotalAmount,
		InstallmentAmount:     req.InstallmentAmount,
		NumberOfInstallments:  req.NumberOfInstallments,
		RemainingInstallments: req.NumberOfInstallments,
		CurrencyCode:          currency,
		StartDate:             req.StartDate,
		EndDate:               schedule.AddMonthsClamped(req.StartDate, req.NumberOfInstallments-1),
		AuditFields:           audit,
	}

	installments := make([]domain.Installment, req.NumberOfInstallments)
	for i := 0; i < req.NumberOfInstallments; i++ {
		installments[i] = domain.Installment{
			InstallmentID:     uuid.NewString(),
			PlanID:            plan.PlanID,
			Amount:            req.InstallmentAmount,
			DueDate:           schedule.AddMonthsClamped(req.StartDate, i),
			InstallmentNumber: i + 1,
			AuditFields:       audit,
		}
	}

	if err := s.liabilityRepo.SaveInstallmentPlan(ctx, plan, installments); err != nil {
		s.LogError(ctx, err, "Failed to save installment plan",
			slog.String("plan_id", plan.PlanID),
			slog.String("liability_id", liabilityID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Installment plan created",
		slog.String("plan_id", plan.PlanID),
		slog.String("liability_id", liabilityID),
		slog.Int("installments", req.NumberOfInstallments))
	return &plan, installments, nil
}

// GetInstallmentPlan retrieves a plan and its installments under a liability
// owned by the caller's family. A plan under another liability surfaces as not
// found.
func (s *liabilityService) GetInstallmentPlan(ctx context.Context, liabilityID string, planID string, userID string) (*domain.InstallmentPlan, []domain.Installment, error) {
	if _, err := s.GetLiabilityByID(ctx, liabilityID, userID); err != nil {
		return nil, nil, err
	}

	plan, err := s.liabilityRepo.FindPlanByID(ctx, planID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find installment plan",
				slog.String("plan_id", planID))
		}
		return nil, nil, err
	}
	if plan.LiabilityID != liabilityID {
		return nil, nil, apperrors.ErrNotFound
	}

	installments, err := s.liabilityRepo.FindInstallmentsByPlanID(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load plan installments",
			slog.String("plan_id", planID))
		return nil, nil, err
	}
	return plan, installments, nil
}

// GetInstallment retrieves a single installment under a liability owned by the
// caller's family.
func (s *liabilityService) GetInstallment(ctx context.Context, liabilityID string, installmentID string, userID string) (*domain.Installment, error) {
	if _, err := s.GetLiabilityByID(ctx, liabilityID, userID); err != nil {
		return nil, err
	}

	installment, err := s.liabilityRepo.FindInstallmentForLiability(ctx, installmentID, liabilityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find installment",
				slog.String("installment_id", installmentID),
				slog.String("liability_id", liabilityID))
		}
		return nil, err
	}
	return installment, nil
}

// MarkInstallmentPaid transitions one installment to paid exactly once. The
// repository performs the transition transactionally; a concurrent duplicate
// call surfaces as a validation error.
func (s *liabilityService) MarkInstallmentPaid(ctx context.Context, liabilityID string, installmentID string, transactionID *string, userID string) (*domain.Installment, *domain.InstallmentPlan, error) {
	if _, err := s.GetLiabilityByID(ctx, liabilityID, userID); err != nil {
		return nil, nil, err
	}

	installment, plan, err := s.liabilityRepo.MarkInstallmentPaid(ctx, liabilityID, installmentID, transactionID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to mark installment paid",
				slog.String("installment_id", installmentID),
				slog.String("liability_id", liabilityID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Installment paid",
		slog.String("installment_id", installmentID),
		slog.String("plan_id", plan.PlanID),
		slog.Int("remaining", plan.RemainingInstallments))
	return installment, plan, nil
}

// defaultUpcomingWindowDays is the window the summary's upcoming slice uses.
const defaultUpcomingWindowDays = 30

// mergeUpcomingPayments builds the merged upcoming-payments view for a family:
// unpaid installments due within the window plus synthesized next minimum
// payments for the given active credit cards. Overdue unpaid installments are
// included; entries sort ascending by due date.
func (s *liabilityService) mergeUpcomingPayments(ctx context.Context, familyID string, actives []domain.Liability, days int) ([]domain.UpcomingPayment, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	due, err := s.liabilityRepo.FindUnpaidInstallmentsDue(ctx, familyID, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to load due installments",
			slog.String("family_id", familyID))
		return nil, err
	}

	payments := make([]domain.UpcomingPayment, 0, len(due))
	for _, d := range due {
		daysUntil := schedule.DaysUntil(d.DueDate, now)
		payments = append(payments, domain.UpcomingPayment{
			LiabilityID:   d.LiabilityID,
			LiabilityName: d.LiabilityName,
			LiabilityType: d.LiabilityType,
			Source:        domain.SourceInstallment,
			InstallmentID: d.InstallmentID,
			Amount:        d.Amount,
			CurrencyCode:  d.CurrencyCode,
			DueDate:       d.DueDate,
			DaysUntilDue:  daysUntil,
			IsOverdue:     daysUntil < 0,
		})
	}

	// Active credit cards with a minimum payment, a due day and an outstanding
	// balance contribute a synthesized entry for their next payment date.
	for _, l := range actives {
		if l.LiabilityType != domain.CreditCard || l.MinimumPayment == nil || l.PaymentDueDay == nil {
			continue
		}
		if !l.MinimumPayment.IsPositive() || !l.CurrentBalance.IsPositive() {
			continue
		}
		dueDate := schedule.NextDayOfMonth(*l.PaymentDueDay, now)
		if dueDate.After(cutoff) {
			continue
		}
		daysUntil := schedule.DaysUntil(dueDate, now)
		payments = append(payments, domain.UpcomingPayment{
			LiabilityID:   l.LiabilityID,
			LiabilityName: l.Name,
			LiabilityType: l.LiabilityType,
			Source:        domain.SourceMinimumPayment,
			Amount:        *l.MinimumPayment,
			CurrencyCode:  l.CurrencyCode,
			DueDate:       dueDate,
			DaysUntilDue:  daysUntil,
			IsOverdue:     daysUntil < 0,
		})
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})
	return payments, nil
}

// GetUpcomingPayments merges unpaid installments due within the window with
// synthesized next minimum payments for active credit cards. Overdue unpaid
// installments are included; entries sort ascending by due date.
func (s *liabilityService) GetUpcomingPayments(ctx context.Context, userID string, days int) ([]domain.UpcomingPayment, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}

	actives, err := s.liabilityRepo.ListActiveLiabilities(ctx, familyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active liabilities",
			slog.String("family_id", familyID))
		return nil, err
	}

	return s.mergeUpcomingPayments(ctx, familyID, actives, days)
}

// GetSummary aggregates the caller's family active liabilities in-process.
func (s *liabilityService) GetSummary(ctx context.Context, userID string) (*dto.LiabilitiesSummaryResponse, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}

	liabilities, err := s.liabilityRepo.ListActiveLiabilities(ctx, familyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active liabilities for summary",
			slog.String("family_id", familyID))
		return nil, err
	}

	summary := &dto.LiabilitiesSummaryResponse{
		TotalCount: len(liabilities),
		ByType:     make(map[string]dto.LiabilityTypeBreakdown),
	}
	creditCardBalance := decimal.Zero
	for _, l := range liabilities {
		summary.TotalBalance = summary.TotalBalance.Add(l.CurrentBalance)
		if l.CreditLimit != nil {
			summary.TotalCreditLimit = summary.TotalCreditLimit.Add(*l.CreditLimit)
			creditCardBalance = creditCardBalance.Add(l.CurrentBalance)
		}
		bt := summary.ByType[string(l.LiabilityType)]
		bt.Count++
		bt.TotalOwed = bt.TotalOwed.Add(l.CurrentBalance)
		summary.ByType[string(l.LiabilityType)] = bt
	}
	if summary.TotalCreditLimit.IsPositive() {
		summary.OverallUtilizationPct = creditCardBalance.
			Div(summary.TotalCreditLimit).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	// The upcoming slice is the same merged view the upcoming endpoint serves,
	// over the default 30-day window, so the two always agree.
	upcoming, err := s.mergeUpcomingPayments(ctx, familyID, liabilities, defaultUpcomingWindowDays)
	if err != nil {
		return nil, err
	}
	summary.UpcomingPaymentCount = len(upcoming)
	for _, p := range upcoming {
		summary.UpcomingPaymentTotal = summary.UpcomingPaymentTotal.Add(p.Amount)
	}

	return summary, nil
}

// DetectBNPL returns the first matching provider for the given transaction
// text, or nil when none match.
func (s *liabilityService) DetectBNPL(ctx context.Context, description string, merchantName string) *domain.BNPLMatch {
	match := domain.DetectBNPL(description, merchantName)
	if match != nil {
		s.LogDebug(ctx, "BNPL provider detected",
			slog.String("provider", match.Provider))
	}
	return match
}
