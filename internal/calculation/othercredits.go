package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// foreignTaxCredit limits foreign tax paid to the share of the federal
// liability attributable to foreign-source income. Without source income
// the limit collapses to the liability itself.
func foreignTaxCredit(in *domain.TaxpayerInput, ctx creditContext) creditResult {
	if in.ForeignTax.Paid <= 0 {
		return creditResult{}
	}
	limit := ctx.TaxBeforeCredits
	if in.ForeignTax.SourceIncome > 0 && ctx.TaxableIncome > 0 {
		share := money.Ratio(money.Min(in.ForeignTax.SourceIncome, ctx.TaxableIncome), ctx.TaxableIncome)
		limit = money.Mul(ctx.TaxBeforeCredits, share)
	}
	return creditResult{Amount: money.Min(in.ForeignTax.Paid, limit)}
}

// saversCredit computes the retirement savings contributions credit: the
// first AGI tier whose ceiling covers the filer sets the rate, applied
// to contributions capped per person.
func saversCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.SaversRules) creditResult {
	if in.RetirementContributions <= 0 || len(rules.Tiers) == 0 {
		return creditResult{}
	}
	cap := rules.ContributionCap
	if in.FilingStatus == domain.MarriedFilingJointly {
		cap *= 2
	}
	contributions := money.Min(in.RetirementContributions, cap)

	for _, tier := range rules.Tiers {
		if ctx.AGI <= tier.AGIMax.ForStatus(ctx.FilingStatus) {
			return creditResult{Amount: money.Mul(contributions, tier.Rate)}
		}
	}
	return creditResult{PhaseOutApplied: true}
}

// reconcilePremiumTaxCredit settles advance premium tax credit payments
// against the allowed credit. The allowed amount is the benchmark
// premium less the expected contribution, a flat percentage of AGI
// standing in for the sliding federal-poverty-level scale.
// Excess allowed is refundable; excess advance is repaid with the tax.
func reconcilePremiumTaxCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.PTCRules) (refundable, repayment money.Cents) {
	ptc := in.PremiumTaxCredit
	if ptc == nil {
		return 0, 0
	}
	contribution := money.Mul(ctx.AGI, rules.ContributionRate)
	allowed := money.Max0(ptc.BenchmarkPremium - contribution)
	if allowed >= ptc.AdvanceReceived {
		return allowed - ptc.AdvanceReceived, 0
	}
	return 0, ptc.AdvanceReceived - allowed
}
