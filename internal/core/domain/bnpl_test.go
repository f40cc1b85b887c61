package domain_test

import (
	"testing"

	"github.com/finfam/family_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBNPL(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		merchantName string
		wantProvider string // empty means no match
	}{
		{name: "klarna prefix", description: "KLARNA*Purchase 4827", wantProvider: "Klarna"},
		{name: "afterpay in merchant", description: "Payment", merchantName: "Afterpay US", wantProvider: "Afterpay"},
		{name: "affirm", description: "AFFIRM PAYMENT", wantProvider: "Affirm"},
		{name: "paypal pay in 4", description: "PAYPAL *PAY IN 4", wantProvider: "PayPal Pay in 4"},
		{name: "paypal payin3 compact", description: "paypal payin3", wantProvider: "PayPal Pay in 3"},
		{name: "clearpay", description: "Clearpay order", wantProvider: "Clearpay"},
		{name: "zip as word", description: "ZIP PAY SYDNEY", wantProvider: "Zip"},
		{name: "zip inside another word ignored", description: "unzipped archive fees", wantProvider: ""},
		{name: "sezzle", description: "SEZZLE ORDER 99", wantProvider: "Sezzle"},
		{name: "quadpay", description: "QUADPAY*STORE", wantProvider: "Quadpay"},
		{name: "laybuy", description: "Laybuy NZ", wantProvider: "Laybuy"},
		{name: "no match", description: "Grocery Store", merchantName: "Local Market", wantProvider: ""},
		{name: "empty input", description: "", merchantName: "", wantProvider: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := domain.DetectBNPL(tt.description, tt.merchantName)
			if tt.wantProvider == "" {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantProvider, match.Provider)
			assert.Equal(t, tt.wantProvider+" Purchase", match.SuggestedName)
			assert.True(t, match.Confidence.Equal(decimal.NewFromFloat(0.9)))
			assert.NotEmpty(t, match.MatchedPattern)
		})
	}
}

func TestDetectBNPLFirstMatchWins(t *testing.T) {
	// Text mentioning two providers resolves to the one earlier in the table.
	match := domain.DetectBNPL("klarna via afterpay gateway", "")
	require.NotNil(t, match)
	assert.Equal(t, "Klarna", match.Provider)
}
