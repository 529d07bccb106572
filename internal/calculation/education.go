package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// educationCredits sums the per-student American Opportunity and Lifetime
// Learning credits. The two are mutually exclusive per student (enforced
// at validation); each has its own phase-out range and the AOTC carries a
// 40% refundable share. LLC expenses pool across students up to one cap.
func educationCredits(in *domain.TaxpayerInput, ctx creditContext, rules domain.EducationRules) creditResult {
	if len(in.Education) == 0 {
		return creditResult{}
	}

	var aotcTotal, llcExpenses money.Cents
	for _, s := range in.Education {
		switch s.Credit {
		case domain.AmericanOpportunity:
			aotcTotal += tieredCredit(s.QualifiedExpenses, rules.AOTC)
		case domain.LifetimeLearning:
			llcExpenses += s.QualifiedExpenses
		}
	}

	var out creditResult

	if aotcTotal > 0 {
		full := aotcTotal
		allowed := PhaseOut(ctx.AGI,
			rules.AOTC.PhaseOutStart.ForStatus(ctx.FilingStatus),
			rules.AOTC.PhaseOutEnd.ForStatus(ctx.FilingStatus),
			full)
		if allowed < full {
			out.PhaseOutApplied = true
		}
		refundable := money.Mul(allowed, rules.AOTC.RefundableShare)
		out.Refundable += refundable
		out.Amount += allowed - refundable
	}

	if llcExpenses > 0 {
		full := tieredCredit(llcExpenses, rules.LLC)
		allowed := PhaseOut(ctx.AGI,
			rules.LLC.PhaseOutStart.ForStatus(ctx.FilingStatus),
			rules.LLC.PhaseOutEnd.ForStatus(ctx.FilingStatus),
			full)
		if allowed < full {
			out.PhaseOutApplied = true
		}
		out.Amount += allowed
	}

	return out
}

// tieredCredit applies the two-tier rate structure of an education
// credit: TierOneRate on the first TierOneMax of expenses, TierTwoRate
// on the next TierTwoMax.
func tieredCredit(expenses money.Cents, rules domain.EducationCreditRules) money.Cents {
	tierOne := money.Min(expenses, rules.TierOneMax)
	credit := money.Mul(tierOne, rules.TierOneRate)
	if rules.TierTwoMax > 0 && expenses > rules.TierOneMax {
		tierTwo := money.Min(expenses-rules.TierOneMax, rules.TierTwoMax)
		credit += money.Mul(tierTwo, rules.TierTwoRate)
	}
	return credit
}
