package dto

import (
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInstallmentPlanRequest defines the data needed to create an
// installment plan under a liability.
type CreateInstallmentPlanRequest struct {
	TotalAmount          decimal.Decimal `json:"totalAmount" binding:"required"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount" binding:"required"`
	NumberOfInstallments int             `json:"numberOfInstallments" binding:"required,min=1,max=120"`
	StartDate            time.Time       `json:"startDate" binding:"required"`
	CurrencyCode         string          `json:"currencyCode" binding:"omitempty,len=3"` // Defaults to the liability's currency
}

// MarkInstallmentPaidRequest optionally links the payment to a ledger
// transaction.
type MarkInstallmentPaidRequest struct {
	TransactionID *string `json:"transactionID" binding:"omitempty,uuid"`
}

// InstallmentResponse defines the data returned for a single installment.
type InstallmentResponse struct {
	InstallmentID     string          `json:"installmentID"`
	PlanID            string          `json:"planID"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"dueDate"`
	InstallmentNumber int             `json:"installmentNumber"`
	IsPaid            bool            `json:"isPaid"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	TransactionID     string          `json:"transactionID,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment to its DTO.
func ToInstallmentResponse(inst *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:     inst.InstallmentID,
		PlanID:            inst.PlanID,
		Amount:            inst.Amount,
		DueDate:           inst.DueDate,
		InstallmentNumber: inst.InstallmentNumber,
		IsPaid:            inst.IsPaid,
		PaidAt:            inst.PaidAt,
		TransactionID:     inst.TransactionID,
	}
}

// InstallmentPlanResponse defines the data returned for an installment plan,
// including its schedule.
type InstallmentPlanResponse struct {
	PlanID                string                `json:"planID"`
	LiabilityID           string                `json:"liabilityID"`
	TotalAmount           decimal.Decimal       `json:"totalAmount"`
	InstallmentAmount     decimal.Decimal       `json:"installmentAmount"`
	NumberOfInstallments  int                   `json:"numberOfInstallments"`
	RemainingInstallments int                   `json:"remainingInstallments"`
	CurrencyCode          string                `json:"currencyCode"`
	StartDate             time.Time             `json:"startDate"`
	EndDate               time.Time             `json:"endDate"`
	IsPaidOff             bool                  `json:"isPaidOff"`
	Installments          []InstallmentResponse `json:"installments,omitempty"`
}

// ToInstallmentPlanResponse converts a plan and its installments to the DTO.
func ToInstallmentPlanResponse(plan *domain.InstallmentPlan, installments []domain.Installment) InstallmentPlanResponse {
	resp := InstallmentPlanResponse{
		PlanID:                plan.PlanID,
		LiabilityID:           plan.LiabilityID,
		TotalAmount:           plan.TotalAmount,
		InstallmentAmount:     plan.InstallmentAmount,
		NumberOfInstallments:  plan.NumberOfInstallments,
		RemainingInstallments: plan.RemainingInstallments,
		CurrencyCode:          plan.CurrencyCode,
		StartDate:             plan.StartDate,
		EndDate:               plan.EndDate,
		IsPaidOff:             plan.IsPaidOff,
	}
	for i := range installments {
		resp.Installments = append(resp.Installments, ToInstallmentResponse(&installments[i]))
	}
	return resp
}

// UpcomingPaymentResponse is one entry of the merged upcoming-payments view.
type UpcomingPaymentResponse struct {
	LiabilityID   string                       `json:"liabilityID"`
	LiabilityName string                       `json:"liabilityName"`
	LiabilityType domain.LiabilityType         `json:"liabilityType"`
	Source        domain.UpcomingPaymentSource `json:"source"`
	InstallmentID string                       `json:"installmentID,omitempty"`
	Amount        decimal.Decimal              `json:"amount"`
	CurrencyCode  string                       `json:"currencyCode"`
	DueDate       time.Time                    `json:"dueDate"`
	DaysUntilDue  int                          `json:"daysUntilDue"`
	IsOverdue     bool                         `json:"isOverdue"`
}

// ToUpcomingPaymentResponses converts the domain entries to DTOs.
func ToUpcomingPaymentResponses(payments []domain.UpcomingPayment) []UpcomingPaymentResponse {
	res := make([]UpcomingPaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = UpcomingPaymentResponse{
			LiabilityID:   p.LiabilityID,
			LiabilityName: p.LiabilityName,
			LiabilityType: p.LiabilityType,
			Source:        p.Source,
			InstallmentID: p.InstallmentID,
			Amount:        p.Amount,
			CurrencyCode:  p.CurrencyCode,
			DueDate:       p.DueDate,
			DaysUntilDue:  p.DaysUntilDue,
			IsOverdue:     p.IsOverdue,
		}
	}
	return res
}

// UpcomingPaymentsParams defines query parameters for the upcoming view.
type UpcomingPaymentsParams struct {
	Days int `form:"days,default=30" binding:"omitempty,min=1,max=365"`
}

// DetectBNPLRequest carries the transaction text to test against the known
// BNPL provider patterns.
type DetectBNPLRequest struct {
	Description  string `json:"description" binding:"required"`
	MerchantName string `json:"merchantName"`
}

// BNPLDetectionResponse is the detection result for a matched provider.
type BNPLDetectionResponse struct {
	Provider       string          `json:"provider"`
	Confidence     decimal.Decimal `json:"confidence"`
	MatchedPattern string          `json:"matchedPattern"`
	SuggestedName  string          `json:"suggestedName"`
}

// LiabilityTypeBreakdown is the per-type slice of the summary.
type LiabilityTypeBreakdown struct {
	Count     int             `json:"count"`
	TotalOwed decimal.Decimal `json:"totalOwed"`
}

// LiabilitiesSummaryResponse aggregates a family's active liabilities.
type LiabilitiesSummaryResponse struct {
	TotalCount            int                               `json:"totalCount"`
	TotalBalance          decimal.Decimal                   `json:"totalBalance"`
	TotalCreditLimit      decimal.Decimal                   `json:"totalCreditLimit"`
	OverallUtilizationPct decimal.Decimal                   `json:"overallUtilizationPercent"`
	ByType                map[string]LiabilityTypeBreakdown `json:"byType"`
	UpcomingPaymentCount  int                               `json:"upcomingPaymentCount"`
	UpcomingPaymentTotal  decimal.Decimal                   `json:"upcomingPaymentTotal"`
}
