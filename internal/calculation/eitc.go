package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// earnedIncomeCredit computes the fully refundable EITC.
//
// The credit phases in at the per-child-count rate up to the table
// maximum, then phases out above the filing-status threshold. Per
// statute the phase-out uses the higher of earned income or AGI.
// Investment income over the statutory ceiling disqualifies the credit
// entirely.
func earnedIncomeCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.EITCRules) creditResult {
	if len(rules.ByChildren) == 0 || ctx.EarnedIncome <= 0 {
		return creditResult{}
	}
	if in.InvestmentIncome() > rules.InvestmentIncomeLimit {
		return creditResult{Diagnostics: domain.Diagnostics{{
			Code:     domain.CodeEITCInvestmentIncome,
			Severity: domain.SeverityWarning,
			Category: domain.CategoryCredit,
			Phase:    domain.PhaseCredits,
			Context: map[string]string{
				"investment_income": in.InvestmentIncome().String(),
				"limit":             rules.InvestmentIncomeLimit.String(),
			},
		}}}
	}

	children := in.QualifyingChildren(rules.ChildAgeLimit)
	row := rules.ByChildren[len(rules.ByChildren)-1]
	if children < len(rules.ByChildren) {
		row = rules.ByChildren[children]
	}

	phasedIn := money.Min(money.Mul(ctx.EarnedIncome, row.PhaseInRate), row.MaxCredit)

	phaseOutIncome := money.Max(ctx.EarnedIncome, ctx.AGI)
	threshold := row.PhaseOutStart.ForStatus(ctx.FilingStatus)
	credit := phasedIn
	if over := phaseOutIncome - threshold; over > 0 {
		credit = money.SubFloor(phasedIn, money.Mul(over, row.PhaseOutRate), 0)
	}

	return creditResult{
		Refundable:      credit,
		PhaseOutApplied: credit < phasedIn,
	}
}
