package domain_test

import (
	"testing"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestLiabilityIsActive(t *testing.T) {
	assert.True(t, domain.Liability{Status: domain.LiabilityActive}.IsActive())
	assert.False(t, domain.Liability{Status: domain.LiabilityClosed}.IsActive())
	assert.False(t, domain.Liability{Status: domain.LiabilityDefaulted}.IsActive())
}

func TestLiabilityAvailableCredit(t *testing.T) {
	tests := []struct {
		name    string
		limit   *decimal.Decimal
		balance string
		want    *string
	}{
		{name: "no limit", limit: nil, balance: "100", want: nil},
		{name: "partial usage", limit: decPtr("1000"), balance: "250", want: strPtr("750")},
		{name: "maxed out", limit: decPtr("500"), balance: "500", want: strPtr("0")},
		{name: "over limit goes negative", limit: decPtr("500"), balance: "600", want: strPtr("-100")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := domain.Liability{
				CreditLimit:    tt.limit,
				CurrentBalance: decimal.RequireFromString(tt.balance),
			}
			got := l.AvailableCredit()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(*tt.want)),
				"got %s, want %s", got, *tt.want)
		})
	}
}

func TestLiabilityUtilizationPercent(t *testing.T) {
	tests := []struct {
		name    string
		limit   *decimal.Decimal
		balance string
		want    *string
	}{
		{name: "no limit", limit: nil, balance: "100", want: nil},
		{name: "zero limit", limit: decPtr("0"), balance: "100", want: nil},
		{name: "quarter used", limit: decPtr("1000"), balance: "250", want: strPtr("25")},
		{name: "rounds to two decimals", limit: decPtr("3"), balance: "1", want: strPtr("33.33")},
		{name: "zero balance", limit: decPtr("1000"), balance: "0", want: strPtr("0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := domain.Liability{
				CreditLimit:    tt.limit,
				CurrentBalance: decimal.RequireFromString(tt.balance),
			}
			got := l.UtilizationPercent()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(*tt.want)),
				"got %s, want %s", got, *tt.want)
		})
	}
}

func strPtr(s string) *string { return &s }
