package dto

import (
	"time"

	"github.com/finfam/family_finance_app/internal/core/domain"
)

// CreateFamilyRequest defines the data needed to create a family.
type CreateFamilyRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,len=3"`
}

// AddFamilyMemberRequest adds an existing user to the caller's family.
type AddFamilyMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

// FamilyResponse defines the data returned for a family.
type FamilyResponse struct {
	FamilyID     string    `json:"familyID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ToFamilyResponse converts a domain.Family to FamilyResponse DTO.
func ToFamilyResponse(family *domain.Family) FamilyResponse {
	return FamilyResponse{
		FamilyID:     family.FamilyID,
		Name:         family.Name,
		CurrencyCode: family.CurrencyCode,
		CreatedAt:    family.CreatedAt,
		CreatedBy:    family.CreatedBy,
	}
}
