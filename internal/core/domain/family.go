package domain

// Family is the multi-user sharing unit that scopes all financial data.
// Every account and liability belongs to exactly one family, and membership
// (users.family_id) is the sole authorization boundary.
type Family struct {
	FamilyID     string `json:"familyID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // Default currency for the family
	AuditFields
}
