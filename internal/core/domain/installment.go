package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentPlan is a fixed-schedule repayment plan attached to a liability,
// e.g. a BNPL "pay in 4". A plan is always created atomically together with
// its full set of installments.
type InstallmentPlan struct {
	PlanID               string          `json:"planID"`
	LiabilityID          string          `json:"liabilityID"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	// RemainingInstallments is monotonically non-increasing; it is decremented
	// exactly once per installment that transitions to paid.
	RemainingInstallments int             `json:"remainingInstallments"`
	CurrencyCode          string          `json:"currencyCode"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	IsPaidOff             bool            `json:"isPaidOff"`
	AuditFields
}

// Installment is one scheduled payment unit within a plan. IsPaid is a
// one-way transition; once paid, PaidAt and TransactionID are never cleared.
type Installment struct {
	InstallmentID     string          `json:"installmentID"`
	PlanID            string          `json:"planID"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"dueDate"`
	InstallmentNumber int             `json:"installmentNumber"` // 1-based within the plan
	IsPaid            bool            `json:"isPaid"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	TransactionID     string          `json:"transactionID,omitempty"` // Optional ledger link
	AuditFields
}

// InstallmentDue is an unpaid installment joined with the liability it
// ultimately belongs to, as returned by the upcoming-payments query.
type InstallmentDue struct {
	Installment
	LiabilityID   string
	LiabilityName string
	LiabilityType LiabilityType
	CurrencyCode  string
}

// UpcomingPaymentSource distinguishes where an upcoming payment entry came from.
type UpcomingPaymentSource string

const (
	SourceInstallment    UpcomingPaymentSource = "INSTALLMENT"
	SourceMinimumPayment UpcomingPaymentSource = "MINIMUM_PAYMENT"
)

// UpcomingPayment is one entry of the merged upcoming-payments view: either a
// concrete unpaid installment or a synthesized next minimum payment for an
// active credit card.
type UpcomingPayment struct {
	LiabilityID   string                `json:"liabilityID"`
	LiabilityName string                `json:"liabilityName"`
	LiabilityType LiabilityType         `json:"liabilityType"`
	Source        UpcomingPaymentSource `json:"source"`
	InstallmentID string                `json:"installmentID,omitempty"`
	Amount        decimal.Decimal       `json:"amount"`
	CurrencyCode  string                `json:"currencyCode"`
	DueDate       time.Time             `json:"dueDate"`
	DaysUntilDue  int                   `json:"daysUntilDue"`
	IsOverdue     bool                  `json:"isOverdue"`
}
