package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// regularTax is phase 6. When preferential income (qualified dividends
// and net long-term gains) is present, taxable income splits into an
// ordinary portion taxed through the standard brackets and a
// preferential portion taxed through the 0/15/20 tiers. The tiers stack
// on top of ordinary income: each threshold is consumed by the ordinary
// amount first, never measured from zero.
func (p *pipeline) regularTax() {
	r := p.res
	brackets := p.rs.Brackets.ForStatus(p.in.FilingStatus)

	pref := money.Min(money.Max0(p.preferential), r.TaxableIncome)
	ordinary := r.TaxableIncome - pref

	r.RegularTax = TaxFromBrackets(ordinary, brackets)
	r.AddStep("Tax on ordinary income", r.RegularTax, "Tax tables", "progressive brackets")

	if pref > 0 {
		r.CapitalGainsTax = p.preferentialTax(ordinary, pref)
		r.AddStep("Tax on qualified dividends and long-term gains", r.CapitalGainsTax,
			"Qualified Dividends and Capital Gain Tax Worksheet", "0/15/20% tiers stacked on ordinary income")
	}
}

// preferentialTax taxes the preferential portion through the three-tier
// schedule with thresholds reduced by the ordinary income already taxed.
func (p *pipeline) preferentialTax(ordinary, pref money.Cents) money.Cents {
	cg := p.rs.CapitalGains
	status := p.in.FilingStatus

	zeroRoom := money.Max0(cg.ZeroRateMax.ForStatus(status) - ordinary)
	fifteenRoom := money.Max0(cg.FifteenRateMax.ForStatus(status) - ordinary)

	inZero := money.Min(pref, zeroRoom)
	inFifteen := money.Min(pref-inZero, money.Max0(fifteenRoom-inZero))
	inTop := pref - inZero - inFifteen

	total := decimal.NewFromInt(int64(inFifteen)).Mul(cg.MidRate).
		Add(decimal.NewFromInt(int64(inTop)).Mul(cg.TopRate))
	return money.Cents(total.Round(0).IntPart())
}

// alternativeMinimum is phase 7. The AMT base adds back the deduction the
// regular computation took (the full standard deduction, or the SALT
// component of itemized), applies the phased-out exemption and the
// two-rate schedule. Only the excess over the regular path is carried as
// the AMT component so phase 9 reduces to a plain sum.
func (p *pipeline) alternativeMinimum() {
	if !p.in.Options.ComputeAMT {
		return
	}
	r := p.res
	rules := p.rs.AMT
	status := p.in.FilingStatus

	var addBack money.Cents
	switch r.DeductionType {
	case domain.DeductionStandard:
		addBack = r.DeductionUsed
	case domain.DeductionItemized:
		addBack = money.Min(p.in.Itemized.StateLocalTaxes, p.rs.Deductions.SALTCap)
	}
	amtIncome := r.TaxableIncome + addBack

	exemption := rules.Exemption.ForStatus(status)
	phaseOutStart := rules.PhaseOutStart.ForStatus(status)
	if amtIncome > phaseOutStart {
		exemption = money.SubFloor(exemption, money.Mul(amtIncome-phaseOutStart, rules.PhaseOutRate), 0)
	}
	base := money.Max0(amtIncome - exemption)
	if base == 0 {
		return
	}

	low := money.Min(base, rules.HighRateThreshold)
	high := base - low
	tentative := decimal.NewFromInt(int64(low)).Mul(rules.LowRate).
		Add(decimal.NewFromInt(int64(high)).Mul(rules.HighRate))
	tentativeTax := money.Cents(tentative.Round(0).IntPart())

	regular := r.RegularTax + r.CapitalGainsTax
	if tentativeTax > regular {
		r.AMT = tentativeTax - regular
		p.warn(domain.CodeAMTApplied, domain.PhaseAMT, domain.CategoryCalculation, map[string]string{
			"tentative": tentativeTax.String(),
			"regular":   regular.String(),
		})
		r.AddStep("Alternative minimum tax", r.AMT, "Form 6251", "tentative minimum tax - regular tax")
	}
}
