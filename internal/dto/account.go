package dto

import (
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT_LINE CASH"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,len=3"`
	Balance      *decimal.Decimal   `json:"balance"` // Optional opening balance, defaults to 0
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	FamilyID     string             `json:"familyID"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Balance      decimal.Decimal    `json:"balance"`
	IsActive     bool               `json:"isActive"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		FamilyID:     acc.FamilyID,
		Name:         acc.Name,
		AccountType:  acc.AccountType,
		CurrencyCode: acc.CurrencyCode,
		Balance:      acc.Balance,
		IsActive:     acc.IsActive,
		CreatedAt:    acc.CreatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
