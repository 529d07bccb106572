package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// TaxFromBrackets runs income through a progressive bracket schedule.
// The per-bracket products accumulate exactly in decimal and round
// half-up once at the end, so adjacent incomes never produce a rounding
// discontinuity larger than one cent.
func TaxFromBrackets(income money.Cents, brackets []domain.TaxBracket) money.Cents {
	if income <= 0 {
		return 0
	}
	total := decimal.Zero
	for _, b := range brackets {
		if income <= b.Min {
			break
		}
		inBracket := money.Min(income, b.Max) - b.Min
		if inBracket > 0 {
			total = total.Add(decimal.NewFromInt(int64(inBracket)).Mul(b.Rate))
		}
	}
	return money.Cents(total.Round(0).IntPart())
}

// MarginalRate returns the rate of the bracket containing income. Income
// beyond every finite bracket lands in the unbounded top bracket.
func MarginalRate(income money.Cents, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	if income <= 0 {
		return brackets[0].Rate
	}
	for _, b := range brackets {
		if income > b.Min && income <= b.Max {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}
