package calculation

import (
	"github.com/piechiang/taxengine/pkg/money"
)

// additionalTaxes is phase 8: additional Medicare tax and net investment
// income tax. Self-employment tax was already computed in phase 2, where
// its deductible half was needed.
func (p *pipeline) additionalTaxes() {
	r := p.res

	if r.SelfEmploymentTax > 0 {
		r.AddStep("Self-employment tax", r.SelfEmploymentTax, "Schedule SE", "15.3% on 92.35% of net profit, SS portion wage-base capped")
	}

	if p.in.Options.ComputeAdditionalMedicare {
		threshold := p.rs.AdditionalMedicare.Threshold.ForStatus(p.in.FilingStatus)
		medicareBase := p.in.Income.Wages + p.seNetEarnings
		if excess := medicareBase - threshold; excess > 0 {
			r.AdditionalMedicareTax = money.Mul(excess, p.rs.AdditionalMedicare.Rate)
			r.AddStep("Additional Medicare tax", r.AdditionalMedicareTax, "Form 8959", "0.9% of earnings above threshold")
		}
	}

	if p.in.Options.ComputeNIIT {
		threshold := p.rs.NIIT.Threshold.ForStatus(p.in.FilingStatus)
		if over := r.AGI - threshold; over > 0 {
			nii := p.netInvestmentIncome()
			base := money.Min(nii, over)
			if base > 0 {
				r.NIIT = money.Mul(base, p.rs.NIIT.Rate)
				r.AddStep("Net investment income tax", r.NIIT, "Form 8960", "3.8% of lesser of NII or AGI over threshold")
			}
		}
	}
}

// netInvestmentIncome is the NIIT base: interest, dividends, net capital
// gains and passive Schedule E income, losses excluded.
func (p *pipeline) netInvestmentIncome() money.Cents {
	in := p.in.Income
	return in.TaxableInterest + in.OrdinaryDividends +
		money.Max0(p.netCapitalGains) + money.Max0(in.ScheduleEIncome)
}
