package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserReader) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{userReader: userRepo},
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account in the caller's family.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		FamilyID:     familyID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		Balance:      balance,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("family_id", familyID))
	return &account, nil
}

// GetAccountByID retrieves an account owned by the caller's family. An account
// belonging to another family surfaces as not found.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.FamilyID != familyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves a page of the caller's family accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	familyID, err := s.ResolveFamilyID(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, familyID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("family_id", familyID))
		return nil, err
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive after ownership verification.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID, userID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
