package services

import (
	"context"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/finfam/family_finance_app/internal/dto"
)

// AccountSvcFacade defines operations on family payment accounts. Every
// operation resolves the caller's family and scopes to it.
type AccountSvcFacade interface {
	// CreateAccount persists a new account in the caller's family.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves an account owned by the caller's family.
	GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves a page of the caller's family accounts.
	ListAccounts(ctx context.Context, userID string, params dto.ListAccountsParams) ([]domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
