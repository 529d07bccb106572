package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// childTaxCredit computes the nonrefundable child tax credit plus the
// credit for other dependents. The phase-out reduces the credit by a
// fixed amount per $1,000 (or fraction, rounded UP) of AGI over the
// filing-status threshold. The ceiling is statutory: one dollar over the
// threshold costs a full step of reduction.
func childTaxCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.CTCRules) creditResult {
	children := in.QualifyingChildren(rules.ChildAgeLimit)
	others := len(in.Dependents) - children
	base := money.Cents(children)*rules.PerChild + money.Cents(others)*rules.OtherDependent
	if base == 0 {
		return creditResult{}
	}

	threshold := rules.PhaseOutThreshold.ForStatus(ctx.FilingStatus)
	reduced := ReduceBySteps(base, ctx.AGI-threshold, rules.PhaseOutStep, rules.PhaseOutPerStep)

	return creditResult{
		Amount:          reduced,
		PhaseOutApplied: reduced < base,
	}
}

// additionalChildTaxCredit converts unused nonrefundable CTC into the
// refundable additional child tax credit, capped by 15% of earned income
// over the floor and by the per-child refundable maximum.
func additionalChildTaxCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.CTCRules, unused money.Cents) money.Cents {
	if unused <= 0 {
		return 0
	}
	children := in.QualifyingChildren(rules.ChildAgeLimit)
	if children == 0 {
		return 0
	}
	earnedCap := money.Mul(money.Max0(ctx.EarnedIncome-rules.EarnedIncomeFloor), rules.RefundableRate)
	perChildCap := money.Cents(children) * rules.RefundableMax
	return money.Min(unused, money.Min(earnedCap, perChildCap))
}
