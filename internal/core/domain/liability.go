package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiabilityType classifies a tracked debt obligation.
type LiabilityType string

const (
	CreditCard LiabilityType = "CREDIT_CARD"
	Loan       LiabilityType = "LOAN"
	Mortgage   LiabilityType = "MORTGAGE"
	BNPL       LiabilityType = "BNPL"
	OtherDebt  LiabilityType = "OTHER"
)

// LiabilityStatus is the lifecycle state of a liability.
type LiabilityStatus string

const (
	LiabilityActive    LiabilityStatus = "ACTIVE"
	LiabilityClosed    LiabilityStatus = "CLOSED"
	LiabilityDefaulted LiabilityStatus = "DEFAULTED"
)

// Liability represents a financial obligation owned by a family: a credit
// card, loan, mortgage or buy-now-pay-later purchase.
type Liability struct {
	LiabilityID    string          `json:"liabilityID"`
	FamilyID       string          `json:"familyID"`
	AccountID      string          `json:"accountID,omitempty"` // Optional linked payment account
	LiabilityType  LiabilityType   `json:"liabilityType"`
	Name           string          `json:"name"`
	Status         LiabilityStatus `json:"status"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	// CreditLimit is required (and > 0) for CREDIT_CARD liabilities.
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	// OriginalAmount is required (and > 0) for BNPL, LOAN and MORTGAGE liabilities.
	OriginalAmount *decimal.Decimal `json:"originalAmount,omitempty"`
	CurrencyCode   string           `json:"currencyCode"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	MinimumPayment *decimal.Decimal `json:"minimumPayment,omitempty"`
	// Day-of-month fields are 1..31; short months clamp to their last day.
	BillingCycleDay   *int `json:"billingCycleDay,omitempty"`
	PaymentDueDay     *int `json:"paymentDueDay,omitempty"`
	StatementCloseDay *int `json:"statementCloseDay,omitempty"`
	// Provider is required for BNPL liabilities (e.g. "Klarna").
	Provider     string     `json:"provider,omitempty"`
	ExternalID   string     `json:"externalID,omitempty"`
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
	Metadata     []byte     `json:"-"` // Free-form JSON blob
	AuditFields
}

// IsActive reports whether the liability participates in upcoming-payment and
// summary calculations.
func (l Liability) IsActive() bool {
	return l.Status == LiabilityActive
}

// AvailableCredit returns creditLimit - currentBalance for credit cards, or
// nil when no credit limit is set.
func (l Liability) AvailableCredit() *decimal.Decimal {
	if l.CreditLimit == nil {
		return nil
	}
	avail := l.CreditLimit.Sub(l.CurrentBalance)
	return &avail
}

// UtilizationPercent returns currentBalance / creditLimit * 100 rounded to two
// decimals, or nil when no positive credit limit is set.
func (l Liability) UtilizationPercent() *decimal.Decimal {
	if l.CreditLimit == nil || !l.CreditLimit.IsPositive() {
		return nil
	}
	pct := l.CurrentBalance.Div(*l.CreditLimit).Mul(decimal.NewFromInt(100)).Round(2)
	return &pct
}
