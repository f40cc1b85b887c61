package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentPlan mirrors the installment_plans table.
type InstallmentPlan struct {
	PlanID                string          `db:"plan_id"`
	LiabilityID           string          `db:"liability_id"`
	TotalAmount           decimal.Decimal `db:"total_amount"`
	InstallmentAmount     decimal.Decimal `db:"installment_amount"`
	NumberOfInstallments  int             `db:"number_of_installments"`
	RemainingInstallments int             `db:"remaining_installments"`
	CurrencyCode          string          `db:"currency_code"`
	StartDate             time.Time       `db:"start_date"`
	EndDate               time.Time       `db:"end_date"`
	IsPaidOff             bool            `db:"is_paid_off"`
	AuditFields
}

// Installment mirrors the installments table.
type Installment struct {
	InstallmentID     string          `db:"installment_id"`
	PlanID            string          `db:"plan_id"`
	Amount            decimal.Decimal `db:"amount"`
	DueDate           time.Time       `db:"due_date"`
	InstallmentNumber int             `db:"installment_number"`
	IsPaid            bool            `db:"is_paid"`
	PaidAt            *time.Time      `db:"paid_at"`
	TransactionID     sql.NullString  `db:"transaction_id"`
	AuditFields
}
