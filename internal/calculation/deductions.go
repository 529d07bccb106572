package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// deductions covers phases 3-5: standard and itemized deductions computed
// in parallel, deduction selection, the QBI deduction, and taxable income.
func (p *pipeline) deductions() {
	r := p.res
	rules := p.rs.Deductions
	status := p.in.FilingStatus

	// Standard deduction: base amount plus age-65 and blind add-ons for
	// self and spouse, measured at tax-year-end.
	std := rules.Standard.ForStatus(status)
	age65 := rules.AdditionalAge65.ForStatus(status)
	blind := rules.AdditionalBlind.ForStatus(status)
	if p.in.Primary.AgeAtYearEnd(p.in.Year) >= 65 {
		std += age65
	}
	if p.in.Primary.Blind {
		std += blind
	}
	if p.in.Spouse != nil {
		if p.in.Spouse.AgeAtYearEnd(p.in.Year) >= 65 {
			std += age65
		}
		if p.in.Spouse.Blind {
			std += blind
		}
	}
	r.StandardDeduction = std

	// Itemized deduction: SALT capped regardless of component mix,
	// medical only in excess of the AGI floor.
	it := p.in.Itemized
	salt := it.StateLocalTaxes
	if salt > rules.SALTCap {
		p.warn(domain.CodeSALTCapApplied, domain.PhaseDeductions, domain.CategoryCalculation, map[string]string{
			"claimed": salt.String(),
			"cap":     rules.SALTCap.String(),
		})
		salt = rules.SALTCap
	}
	medicalFloor := money.Mul(r.AGI, rules.MedicalAGIFloor)
	medical := money.Max0(it.MedicalExpenses - medicalFloor)
	if it.MedicalExpenses > 0 && medical < it.MedicalExpenses {
		p.warn(domain.CodeMedicalFloorApplied, domain.PhaseDeductions, domain.CategoryCalculation, map[string]string{
			"floor":      medicalFloor.String(),
			"deductible": medical.String(),
		})
	}
	itemized := salt + it.MortgageInterest + it.Charitable + medical + it.Other
	r.ItemizedDeduction = itemized

	// Selection: larger of the two unless the caller forces itemized.
	switch {
	case p.in.Options.ForceItemized:
		r.DeductionUsed = itemized
		r.DeductionType = domain.DeductionItemized
		if itemized < std {
			p.warn(domain.CodeItemizedBelowStandard, domain.PhaseDeductions, domain.CategoryFiling, map[string]string{
				"itemized": itemized.String(),
				"standard": std.String(),
			})
		}
	case itemized > std:
		r.DeductionUsed = itemized
		r.DeductionType = domain.DeductionItemized
	default:
		r.DeductionUsed = std
		r.DeductionType = domain.DeductionStandard
	}

	r.AddStep("Standard deduction", std, "Form 1040 line 12", "base + age/blind add-ons")
	r.AddStep("Itemized deductions", itemized, "Schedule A", "SALT capped, medical floored")
	r.AddStep("Deduction used", r.DeductionUsed, "Form 1040 line 12", string(r.DeductionType))

	// Phase 4: QBI deduction, only on positive qualifying income.
	if p.in.Options.ApplyQBI {
		qbi := p.in.QBIIncome
		if qbi == 0 {
			qbi = p.in.Income.ScheduleCNetProfit
		}
		if qbi > 0 {
			beforeQBI := money.Max0(r.AGI - r.DeductionUsed)
			r.QBIDeduction = money.Min(money.Mul(qbi, rules.QBIRate), money.Mul(beforeQBI, rules.QBIRate))
			r.AddStep("Qualified business income deduction", r.QBIDeduction, "Form 8995", "lesser of 20% QBI or 20% of taxable income before QBI")
		}
	}

	// Phase 5: taxable income.
	r.TaxableIncome = money.Max0(r.AGI - r.DeductionUsed - r.QBIDeduction)
	r.AddStep("Taxable income", r.TaxableIncome, "Form 1040 line 15", "AGI - deduction - QBI, floored at 0")
}
