package dto

import (
	"encoding/json"
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLiabilityRequest defines the data needed to create a new liability.
// Type-conditional requirements (creditLimit for credit cards, originalAmount
// and provider for BNPL/loans) are enforced in the service.
type CreateLiabilityRequest struct {
	Name              string                  `json:"name" binding:"required"`
	LiabilityType     domain.LiabilityType    `json:"liabilityType" binding:"required,liabilitytype"`
	Status            *domain.LiabilityStatus `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED DEFAULTED"`
	CurrencyCode      string                  `json:"currencyCode" binding:"omitempty,len=3"`
	CurrentBalance    *decimal.Decimal        `json:"currentBalance"` // Defaults to 0
	CreditLimit       *decimal.Decimal        `json:"creditLimit"`
	OriginalAmount    *decimal.Decimal        `json:"originalAmount"`
	InterestRate      *decimal.Decimal        `json:"interestRate"`
	MinimumPayment    *decimal.Decimal        `json:"minimumPayment"`
	BillingCycleDay   *int                    `json:"billingCycleDay" binding:"omitempty,dayofmonth"`
	PaymentDueDay     *int                    `json:"paymentDueDay" binding:"omitempty,dayofmonth"`
	StatementCloseDay *int                    `json:"statementCloseDay" binding:"omitempty,dayofmonth"`
	AccountID         *string                 `json:"accountID" binding:"omitempty,uuid"`
	Provider          *string                 `json:"provider"`
	ExternalID        *string                 `json:"externalID"`
	PurchaseDate      *time.Time              `json:"purchaseDate"`
	Metadata          json.RawMessage         `json:"metadata"`
}

// UpdateLiabilityRequest defines the data allowed for a partial liability
// update. Every field is optional; only fields present in the request are
// applied.
type UpdateLiabilityRequest struct {
	Name              *string                 `json:"name"`
	Status            *domain.LiabilityStatus `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED DEFAULTED"`
	CurrentBalance    *decimal.Decimal        `json:"currentBalance"`
	CreditLimit       *decimal.Decimal        `json:"creditLimit"`
	OriginalAmount    *decimal.Decimal        `json:"originalAmount"`
	InterestRate      *decimal.Decimal        `json:"interestRate"`
	MinimumPayment    *decimal.Decimal        `json:"minimumPayment"`
	BillingCycleDay   *int                    `json:"billingCycleDay" binding:"omitempty,dayofmonth"`
	PaymentDueDay     *int                    `json:"paymentDueDay" binding:"omitempty,dayofmonth"`
	StatementCloseDay *int                    `json:"statementCloseDay" binding:"omitempty,dayofmonth"`
	AccountID         *string                 `json:"accountID" binding:"omitempty,uuid"`
	Provider          *string                 `json:"provider"`
	ExternalID        *string                 `json:"externalID"`
	Metadata          json.RawMessage         `json:"metadata"`
}

// LiabilityResponse defines the data returned for a liability, including the
// derived credit-card fields.
type LiabilityResponse struct {
	LiabilityID       string                 `json:"liabilityID"`
	FamilyID          string                 `json:"familyID"`
	AccountID         string                 `json:"accountID,omitempty"`
	LiabilityType     domain.LiabilityType   `json:"liabilityType"`
	Name              string                 `json:"name"`
	Status            domain.LiabilityStatus `json:"status"`
	CurrentBalance    decimal.Decimal        `json:"currentBalance"`
	CreditLimit       *decimal.Decimal       `json:"creditLimit,omitempty"`
	AvailableCredit   *decimal.Decimal       `json:"availableCredit,omitempty"`
	UtilizationPct    *decimal.Decimal       `json:"utilizationPercent,omitempty"`
	OriginalAmount    *decimal.Decimal       `json:"originalAmount,omitempty"`
	CurrencyCode      string                 `json:"currencyCode"`
	InterestRate      *decimal.Decimal       `json:"interestRate,omitempty"`
	MinimumPayment    *decimal.Decimal       `json:"minimumPayment,omitempty"`
	BillingCycleDay   *int                   `json:"billingCycleDay,omitempty"`
	PaymentDueDay     *int                   `json:"paymentDueDay,omitempty"`
	StatementCloseDay *int                   `json:"statementCloseDay,omitempty"`
	Provider          string                 `json:"provider,omitempty"`
	ExternalID        string                 `json:"externalID,omitempty"`
	PurchaseDate      *time.Time             `json:"purchaseDate,omitempty"`
	Metadata          json.RawMessage        `json:"metadata,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
}

// ToLiabilityResponse converts a domain.Liability to LiabilityResponse DTO.
func ToLiabilityResponse(l *domain.Liability) LiabilityResponse {
	return LiabilityResponse{
		LiabilityID:       l.LiabilityID,
		FamilyID:          l.FamilyID,
		AccountID:         l.AccountID,
		LiabilityType:     l.LiabilityType,
		Name:              l.Name,
		Status:            l.Status,
		CurrentBalance:    l.CurrentBalance,
		CreditLimit:       l.CreditLimit,
		AvailableCredit:   l.AvailableCredit(),
		UtilizationPct:    l.UtilizationPercent(),
		OriginalAmount:    l.OriginalAmount,
		CurrencyCode:      l.CurrencyCode,
		InterestRate:      l.InterestRate,
		MinimumPayment:    l.MinimumPayment,
		BillingCycleDay:   l.BillingCycleDay,
		PaymentDueDay:     l.PaymentDueDay,
		StatementCloseDay: l.StatementCloseDay,
		Provider:          l.Provider,
		ExternalID:        l.ExternalID,
		PurchaseDate:      l.PurchaseDate,
		Metadata:          l.Metadata,
		CreatedAt:         l.CreatedAt,
		LastUpdatedAt:     l.LastUpdatedAt,
	}
}

// ListLiabilitiesParams defines query parameters for listing liabilities.
type ListLiabilitiesParams struct {
	Status *domain.LiabilityStatus `form:"status" binding:"omitempty,oneof=ACTIVE CLOSED DEFAULTED"`
	Type   *domain.LiabilityType   `form:"type" binding:"omitempty,liabilitytype"`
	Limit  int                     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int                     `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListLiabilitiesResponse is the paginated envelope for liability listings.
type ListLiabilitiesResponse struct {
	Liabilities []LiabilityResponse `json:"liabilities"`
	Total       int64               `json:"total"`
	HasMore     bool                `json:"hasMore"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}
