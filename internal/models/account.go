package models

import "github.com/shopspring/decimal"

// AccountType is the db representation of an account classification.
type AccountType string

// Account mirrors the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	FamilyID     string          `db:"family_id"`
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
