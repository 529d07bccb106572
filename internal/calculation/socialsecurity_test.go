package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

func TestTaxableSocialSecurity(t *testing.T) {
	d := money.FromDollars
	ssRules := fed2025().SocialSecurity

	tests := []struct {
		name        string
		benefits    money.Cents
		otherIncome money.Cents
		taxExempt   money.Cents
		status      domain.FilingStatus
		expected    money.Cents
	}{
		{"no benefits", 0, d(50000), 0, domain.Single, 0},
		{"below threshold", d(10000), d(10000), 0, domain.Single, 0},
		{"exactly at threshold", d(10000), d(20000), 0, domain.Single, 0},
		{"above threshold", d(20000), d(30000), 0, domain.Single, d(17000)},
		{"tax-exempt interest counts toward provisional", d(20000), d(14000), d(2000), domain.Single, d(17000)},
		{"joint threshold is higher", d(20000), d(20000), 0, domain.MarriedFilingJointly, 0},
		{"separate threshold is zero", d(10000), d(1000), 0, domain.MarriedFilingSeparately, d(8500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxableSocialSecurity(tt.benefits, tt.otherIncome, tt.taxExempt, tt.status, ssRules)
			assert.Equal(t, tt.expected, got)
		})
	}
}
