package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// totalIncome is phase 1: sum every income category into total income.
// Losses (capital, Schedule C, Schedule E) reduce total income here;
// floors apply only at later steps.
func (p *pipeline) totalIncome() {
	in := p.in.Income
	r := p.res

	// Net capital gains: short and long net against each other, and the
	// overall net loss deductible against other income is limited.
	net := in.ShortTermCapitalGains + in.LongTermCapitalGains
	lossLimit := p.rs.CapitalGains.CapitalLossLimit.ForStatus(p.in.FilingStatus)
	if net < -lossLimit {
		p.warn(domain.CodeCapitalLossLimited, domain.PhaseIncome, domain.CategoryCalculation, map[string]string{
			"net_loss": (-net).String(),
			"limit":    lossLimit.String(),
		})
		net = -lossLimit
	}
	p.netCapitalGains = net

	// The preferential-rate portion: qualified dividends plus net
	// long-term gain after short-term losses offset it.
	longAfterOffset := in.LongTermCapitalGains
	if in.ShortTermCapitalGains < 0 {
		longAfterOffset += in.ShortTermCapitalGains
	}
	p.preferential = in.QualifiedDividends + money.Max0(longAfterOffset)

	// Social Security taxability needs income-before-benefits.
	otherIncome := in.Wages + in.TaxableInterest + in.OrdinaryDividends + net +
		in.ScheduleCNetProfit + in.ScheduleEIncome + in.RetirementDistributions +
		in.Unemployment + in.Other
	p.taxableSS = TaxableSocialSecurity(in.SocialSecurityBenefits, otherIncome,
		in.TaxExemptInterest, p.in.FilingStatus, p.rs.SocialSecurity)

	r.TotalIncome = otherIncome + p.taxableSS
	r.TaxableSocialSecurity = p.taxableSS

	r.AddStep("Wages", in.Wages, "Form 1040 line 1a", "")
	r.AddStep("Taxable interest", in.TaxableInterest, "Form 1040 line 2b", "")
	r.AddStep("Ordinary dividends", in.OrdinaryDividends, "Form 1040 line 3b", "")
	r.AddStep("Net capital gain or loss", net, "Schedule D", "short + long, loss limited")
	r.AddStep("Business income or loss", in.ScheduleCNetProfit, "Schedule C", "")
	r.AddStep("Rental, royalty and pass-through income", in.ScheduleEIncome, "Schedule E", "")
	r.AddStep("Taxable retirement distributions", in.RetirementDistributions, "Form 1040 line 5b", "")
	if in.SocialSecurityBenefits > 0 {
		r.AddStep("Taxable Social Security benefits", p.taxableSS, "Form 1040 line 6b", "flat 85% inclusion above provisional threshold")
	}
	if in.Unemployment > 0 {
		r.AddStep("Unemployment compensation", in.Unemployment, "Schedule 1 line 7", "")
	}
	if in.Other > 0 {
		r.AddStep("Other income", in.Other, "Schedule 1 line 9", "")
	}
	r.AddStep("Total income", r.TotalIncome, "Form 1040 line 9", "sum of income categories")
}
