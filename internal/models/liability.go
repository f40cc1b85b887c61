package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Liability mirrors the liabilities table. Nullable columns use sql.Null* or
// pointer types so scans round-trip NULLs faithfully.
type Liability struct {
	LiabilityID       string           `db:"liability_id"`
	FamilyID          string           `db:"family_id"`
	AccountID         sql.NullString   `db:"account_id"`
	LiabilityType     string           `db:"liability_type"`
	Name              string           `db:"name"`
	Status            string           `db:"status"`
	CurrentBalance    decimal.Decimal  `db:"current_balance"`
	CreditLimit       *decimal.Decimal `db:"credit_limit"`
	OriginalAmount    *decimal.Decimal `db:"original_amount"`
	CurrencyCode      string           `db:"currency_code"`
	InterestRate      *decimal.Decimal `db:"interest_rate"`
	MinimumPayment    *decimal.Decimal `db:"minimum_payment"`
	BillingCycleDay   sql.NullInt32    `db:"billing_cycle_day"`
	PaymentDueDay     sql.NullInt32    `db:"payment_due_day"`
	StatementCloseDay sql.NullInt32    `db:"statement_close_day"`
	Provider          sql.NullString   `db:"provider"`
	ExternalID        sql.NullString   `db:"external_id"`
	PurchaseDate      *time.Time       `db:"purchase_date"`
	Metadata          []byte           `db:"metadata"`
	AuditFields
}
