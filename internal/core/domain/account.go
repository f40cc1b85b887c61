package domain

import "github.com/shopspring/decimal"

// AccountType classifies a payment account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditLine AccountType = "CREDIT_LINE"
	Cash       AccountType = "CASH"
)

// Account represents a payment account owned by a family. Liabilities may
// link to the account their payments are drawn from.
type Account struct {
	AccountID    string          `json:"accountID"`
	FamilyID     string          `json:"familyID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
