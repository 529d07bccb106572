package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/internal/rules"
	"github.com/piechiang/taxengine/pkg/money"
)

func singleBrackets2025(t *testing.T) []domain.TaxBracket {
	t.Helper()
	return rules.Federal2025().Brackets.Single
}

func TestTaxFromBrackets(t *testing.T) {
	brackets := singleBrackets2025(t)

	tests := []struct {
		name     string
		income   money.Cents
		expected money.Cents
	}{
		{"zero income", 0, 0},
		{"negative income", -money.FromDollars(100), 0},
		{"within first bracket", money.FromDollars(10000), money.FromDollars(1000)},
		{"first bracket boundary", money.FromDollars(11925), 119250},
		{"spans three brackets", money.FromDollars(50000), 591400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TaxFromBrackets(tt.income, brackets))
		})
	}
}

// Tax as a function of income must be continuous at bracket boundaries:
// one more dollar of income never costs more than one dollar at the top
// rate plus a cent of rounding.
func TestTaxFromBracketsBoundaryContinuity(t *testing.T) {
	brackets := singleBrackets2025(t)

	for _, b := range brackets {
		if b.Max == domain.Unbounded {
			continue
		}
		below := TaxFromBrackets(b.Max, brackets)
		above := TaxFromBrackets(b.Max+100, brackets)
		require.GreaterOrEqual(t, above, below, "tax must be monotone at %s", b.Max)
		assert.LessOrEqual(t, above-below, money.Cents(38), "discontinuity at %s", b.Max)
	}
}

func TestMarginalRate(t *testing.T) {
	brackets := singleBrackets2025(t)

	assert.True(t, MarginalRate(0, brackets).Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, MarginalRate(money.FromDollars(50000), brackets).Equal(decimal.NewFromFloat(0.22)))
	assert.True(t, MarginalRate(money.FromDollars(1000000), brackets).Equal(decimal.NewFromFloat(0.37)))
	assert.True(t, MarginalRate(money.FromDollars(100), nil).IsZero())
}
