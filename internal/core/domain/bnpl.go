package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BNPLMatch is the result of matching a transaction against the known
// buy-now-pay-later provider patterns.
type BNPLMatch struct {
	Provider       string          `json:"provider"`
	Confidence     decimal.Decimal `json:"confidence"`
	MatchedPattern string          `json:"matchedPattern"`
	SuggestedName  string          `json:"suggestedName"`
}

// bnplPattern pairs a provider name with the regexp that recognizes it in
// transaction text.
type bnplPattern struct {
	provider string
	re       *regexp.Regexp
}

// bnplPatterns is the static provider lookup table. Order matters: the first
// match wins.
var bnplPatterns = []bnplPattern{
	{"Klarna", regexp.MustCompile(`klarna`)},
	{"Afterpay", regexp.MustCompile(`afterpay`)},
	{"Affirm", regexp.MustCompile(`affirm`)},
	{"PayPal Pay in 4", regexp.MustCompile(`paypal.*pay.?in.?4`)},
	{"PayPal Pay in 3", regexp.MustCompile(`paypal.*pay.?in.?3`)},
	{"Clearpay", regexp.MustCompile(`clearpay`)},
	{"Zip", regexp.MustCompile(`\bzip\b`)},
	{"Sezzle", regexp.MustCompile(`sezzle`)},
	{"Quadpay", regexp.MustCompile(`quadpay`)},
	{"Laybuy", regexp.MustCompile(`laybuy`)},
}

// bnplConfidence is a fixed value: matching is a static table lookup, there is
// no scoring model behind it.
var bnplConfidence = decimal.NewFromFloat(0.9)

// DetectBNPL tests transaction text against the known BNPL provider patterns.
// The description and merchant name are concatenated and lowercased before
// matching. Returns nil when no provider matches.
func DetectBNPL(description, merchantName string) *BNPLMatch {
	text := strings.ToLower(strings.TrimSpace(description + " " + merchantName))
	if text == "" {
		return nil
	}
	for _, p := range bnplPatterns {
		if loc := p.re.FindString(text); loc != "" {
			return &BNPLMatch{
				Provider:       p.provider,
				Confidence:     bnplConfidence,
				MatchedPattern: loc,
				SuggestedName:  p.provider + " Purchase",
			}
		}
	}
	return nil
}
