package models

// Family mirrors the families table.
type Family struct {
	FamilyID     string `db:"family_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}
