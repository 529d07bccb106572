package rules

import (
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// States2025 returns the built-in 2025 state bundles.
func States2025() []*domain.StateRuleSet {
	return []*domain.StateRuleSet{
		california2025(),
		newYork2025(),
		pennsylvania2025(),
		maryland2025(),
		noIncomeTaxState("TX", "Texas"),
		noIncomeTaxState("FL", "Florida"),
		noIncomeTaxState("WA", "Washington"),
	}
}

func noIncomeTaxState(code, name string) *domain.StateRuleSet {
	return &domain.StateRuleSet{
		Year:        2025,
		Code:        code,
		Name:        name,
		NoIncomeTax: true,
		Metadata: domain.RuleSetMetadata{
			Source:      "state statute: no personal income tax",
			LastUpdated: "2025-01-01",
		},
	}
}

func california2025() *domain.StateRuleSet {
	d := money.FromDollars
	rate := decimal.NewFromFloat
	single := []domain.TaxBracket{
		{Min: 0, Max: d(10756), Rate: rate(0.01)},
		{Min: d(10756), Max: d(25499), Rate: rate(0.02)},
		{Min: d(25499), Max: d(40245), Rate: rate(0.04)},
		{Min: d(40245), Max: d(55866), Rate: rate(0.06)},
		{Min: d(55866), Max: d(70606), Rate: rate(0.08)},
		{Min: d(70606), Max: d(360659), Rate: rate(0.093)},
		{Min: d(360659), Max: d(432787), Rate: rate(0.103)},
		{Min: d(432787), Max: d(721314), Rate: rate(0.113)},
		{Min: d(721314), Max: domain.Unbounded, Rate: rate(0.123)},
	}
	mfj := doubleSchedule(single)
	return &domain.StateRuleSet{
		Year: 2025,
		Code: "CA",
		Name: "California",
		Metadata: domain.RuleSetMetadata{
			Source:      "FTB 2024 tax rate schedules, indexed",
			LastUpdated: "2025-01-01",
		},
		Brackets: domain.FilingSchedules{
			Single:                  single,
			MarriedFilingJointly:    mfj,
			MarriedFilingSeparately: single,
			HeadOfHousehold:         single,
		},
		StandardDeduction: domain.StatusAmount{
			Single:                  d(5540),
			MarriedFilingJointly:    d(11080),
			MarriedFilingSeparately: d(5540),
			HeadOfHousehold:         d(11080),
		},
		DependentExemption: d(461),
	}
}

func newYork2025() *domain.StateRuleSet {
	d := money.FromDollars
	rate := decimal.NewFromFloat
	single := []domain.TaxBracket{
		{Min: 0, Max: d(8500), Rate: rate(0.04)},
		{Min: d(8500), Max: d(11700), Rate: rate(0.045)},
		{Min: d(11700), Max: d(13900), Rate: rate(0.0525)},
		{Min: d(13900), Max: d(80650), Rate: rate(0.055)},
		{Min: d(80650), Max: d(215400), Rate: rate(0.06)},
		{Min: d(215400), Max: d(1077550), Rate: rate(0.0685)},
		{Min: d(1077550), Max: d(5000000), Rate: rate(0.0965)},
		{Min: d(5000000), Max: d(25000000), Rate: rate(0.103)},
		{Min: d(25000000), Max: domain.Unbounded, Rate: rate(0.109)},
	}
	mfj := []domain.TaxBracket{
		{Min: 0, Max: d(17150), Rate: rate(0.04)},
		{Min: d(17150), Max: d(23600), Rate: rate(0.045)},
		{Min: d(23600), Max: d(27900), Rate: rate(0.0525)},
		{Min: d(27900), Max: d(161550), Rate: rate(0.055)},
		{Min: d(161550), Max: d(323200), Rate: rate(0.06)},
		{Min: d(323200), Max: d(2155350), Rate: rate(0.0685)},
		{Min: d(2155350), Max: d(5000000), Rate: rate(0.0965)},
		{Min: d(5000000), Max: d(25000000), Rate: rate(0.103)},
		{Min: d(25000000), Max: domain.Unbounded, Rate: rate(0.109)},
	}
	return &domain.StateRuleSet{
		Year: 2025,
		Code: "NY",
		Name: "New York",
		Metadata: domain.RuleSetMetadata{
			Source:      "NYS DTF 2024 rate schedules",
			LastUpdated: "2025-01-01",
		},
		Brackets: domain.FilingSchedules{
			Single:                  single,
			MarriedFilingJointly:    mfj,
			MarriedFilingSeparately: single,
			HeadOfHousehold:         single,
		},
		StandardDeduction: domain.StatusAmount{
			Single:                  d(8000),
			MarriedFilingJointly:    d(16050),
			MarriedFilingSeparately: d(8000),
			HeadOfHousehold:         d(11200),
		},
		DependentExemption: d(1000),
		EITCPercent:        rate(0.30),
	}
}

func pennsylvania2025() *domain.StateRuleSet {
	return &domain.StateRuleSet{
		Year: 2025,
		Code: "PA",
		Name: "Pennsylvania",
		Metadata: domain.RuleSetMetadata{
			Source:      "72 P.S. § 7302",
			LastUpdated: "2025-01-01",
		},
		FlatRate:           decimal.NewFromFloat(0.0307),
		RetirementExcluded: true,
	}
}

func maryland2025() *domain.StateRuleSet {
	d := money.FromDollars
	rate := decimal.NewFromFloat
	single := []domain.TaxBracket{
		{Min: 0, Max: d(1000), Rate: rate(0.02)},
		{Min: d(1000), Max: d(2000), Rate: rate(0.03)},
		{Min: d(2000), Max: d(3000), Rate: rate(0.04)},
		{Min: d(3000), Max: d(100000), Rate: rate(0.0475)},
		{Min: d(100000), Max: d(125000), Rate: rate(0.05)},
		{Min: d(125000), Max: d(150000), Rate: rate(0.0525)},
		{Min: d(150000), Max: d(250000), Rate: rate(0.055)},
		{Min: d(250000), Max: domain.Unbounded, Rate: rate(0.0575)},
	}
	mfj := []domain.TaxBracket{
		{Min: 0, Max: d(1000), Rate: rate(0.02)},
		{Min: d(1000), Max: d(2000), Rate: rate(0.03)},
		{Min: d(2000), Max: d(3000), Rate: rate(0.04)},
		{Min: d(3000), Max: d(150000), Rate: rate(0.0475)},
		{Min: d(150000), Max: d(175000), Rate: rate(0.05)},
		{Min: d(175000), Max: d(225000), Rate: rate(0.0525)},
		{Min: d(225000), Max: d(300000), Rate: rate(0.055)},
		{Min: d(300000), Max: domain.Unbounded, Rate: rate(0.0575)},
	}
	return &domain.StateRuleSet{
		Year: 2025,
		Code: "MD",
		Name: "Maryland",
		Metadata: domain.RuleSetMetadata{
			Source:      "Md. Code, Tax-Gen. § 10-105",
			LastUpdated: "2025-01-01",
		},
		Brackets: domain.FilingSchedules{
			Single:                  single,
			MarriedFilingJointly:    mfj,
			MarriedFilingSeparately: single,
			HeadOfHousehold:         mfj,
		},
		StandardDeduction: domain.StatusAmount{
			Single:                  d(2700),
			MarriedFilingJointly:    d(5450),
			MarriedFilingSeparately: d(2700),
			HeadOfHousehold:         d(5450),
		},
		PersonalExemption:  d(3200),
		DependentExemption: d(3200),
		EITCPercent:        rate(0.45),
		LocalRates: map[string]decimal.Decimal{
			"baltimore_city": rate(0.032),
			"montgomery":     rate(0.032),
			"howard":         rate(0.032),
			"prince_georges": rate(0.032),
			"anne_arundel":   rate(0.0281),
			"baltimore":      rate(0.032),
			"frederick":      rate(0.0296),
			"worcester":      rate(0.0225),
		},
	}
}

// doubleSchedule widens every band to twice its single-filer span,
// preserving rates. Used by states whose joint schedule is exactly double.
func doubleSchedule(single []domain.TaxBracket) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(single))
	for i, b := range single {
		out[i] = domain.TaxBracket{Min: b.Min * 2, Max: b.Max, Rate: b.Rate}
		if b.Max != domain.Unbounded {
			out[i].Max = b.Max * 2
		}
	}
	return out
}
