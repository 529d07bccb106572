package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// creditContext is the read-only slice of pipeline state the credit
// sub-calculators consume. Keeping them off the pipeline struct makes
// each one independently testable with a fixed income/family vector.
type creditContext struct {
	Year             int
	FilingStatus     domain.FilingStatus
	AGI              money.Cents
	EarnedIncome     money.Cents
	TaxableIncome    money.Cents
	TaxBeforeCredits money.Cents
}

// creditResult is the common output shape of every credit calculator.
type creditResult struct {
	// Amount is the nonrefundable amount (before the liability limit).
	Amount money.Cents
	// Refundable is the separately refundable portion, added to payments.
	Refundable      money.Cents
	PhaseOutApplied bool
	Diagnostics     domain.Diagnostics
}

// credits is phases 10-11: nonrefundable credits applied against tax
// before credits (never below zero, never generating a refund), then
// refundable credits accumulated into payments. The child tax credit
// runs last in the nonrefundable stack so its unused remainder can
// become the additional (refundable) child tax credit.
func (p *pipeline) credits() {
	r := p.res
	ctx := creditContext{
		Year:             p.in.Year,
		FilingStatus:     p.in.FilingStatus,
		AGI:              r.AGI,
		EarnedIncome:     p.in.EarnedIncome(),
		TaxableIncome:    r.TaxableIncome,
		TaxBeforeCredits: r.TaxBeforeCredits,
	}

	remaining := r.TaxBeforeCredits
	var nonrefundable, refundable money.Cents

	apply := func(name string, res creditResult) {
		for _, d := range res.Diagnostics {
			r.AddDiagnostic(d)
		}
		if res.PhaseOutApplied {
			p.warn(domain.CodePhaseOutApplied, domain.PhaseCredits, domain.CategoryCredit, map[string]string{
				"credit": name,
			})
		}
		if res.Amount > 0 {
			applied := money.Min(res.Amount, remaining)
			if applied < res.Amount {
				p.warn(domain.CodeCreditLimited, domain.PhaseCredits, domain.CategoryCredit, map[string]string{
					"credit": name,
					"unused": (res.Amount - applied).String(),
				})
			}
			nonrefundable += applied
			remaining -= applied
			r.AddStep(name, applied, "", "nonrefundable, limited by remaining liability")
		}
		if res.Refundable > 0 {
			refundable += res.Refundable
			r.AddStep(name+" (refundable portion)", res.Refundable, "", "added to payments")
		}
	}

	apply("Foreign tax credit", foreignTaxCredit(p.in, ctx))
	apply("Child and dependent care credit", childCareCredit(p.in, ctx, p.rs.ChildCare))
	apply("Education credits", educationCredits(p.in, ctx, p.rs.Education))
	apply("Retirement savings contributions credit", saversCredit(p.in, ctx, p.rs.Savers))

	// CTC: the allowed amount is phase-out reduced; whatever the
	// liability cannot absorb flows into the ACTC calculator.
	ctcRes := childTaxCredit(p.in, ctx, p.rs.CTC)
	for _, d := range ctcRes.Diagnostics {
		r.AddDiagnostic(d)
	}
	if ctcRes.PhaseOutApplied {
		p.warn(domain.CodePhaseOutApplied, domain.PhaseCredits, domain.CategoryCredit, map[string]string{
			"credit": "Child tax credit",
		})
	}
	ctcApplied := money.Min(ctcRes.Amount, remaining)
	nonrefundable += ctcApplied
	remaining -= ctcApplied
	r.ChildTaxCredit = ctcRes.Amount
	if ctcApplied > 0 {
		r.AddStep("Child tax credit", ctcApplied, "Schedule 8812", "nonrefundable, limited by remaining liability")
	}
	if actc := additionalChildTaxCredit(p.in, ctx, p.rs.CTC, ctcRes.Amount-ctcApplied); actc > 0 {
		refundable += actc
		r.AddStep("Additional child tax credit", actc, "Schedule 8812", "refundable, earned-income limited")
	}

	eitcRes := earnedIncomeCredit(p.in, ctx, p.rs.EITC)
	r.EITC = eitcRes.Refundable
	apply("Earned income tax credit", eitcRes)

	// Premium tax credit reconciliation: excess allowed over advance is
	// refundable; excess advance over allowed is repaid with the tax.
	if extra, repay := reconcilePremiumTaxCredit(p.in, ctx, p.rs.PremiumTax); extra > 0 || repay > 0 {
		if extra > 0 {
			refundable += extra
			r.AddStep("Net premium tax credit", extra, "Form 8962", "allowed exceeds advance payments")
		}
		if repay > 0 {
			r.PTCRepayment = repay
			p.warn(domain.CodePTCRepayment, domain.PhaseCredits, domain.CategoryCredit, map[string]string{
				"repayment": repay.String(),
			})
			r.AddStep("Excess advance premium tax credit repayment", repay, "Form 8962", "advance exceeds allowed")
		}
	}

	r.NonrefundableCredits = nonrefundable
	r.RefundableCredits = refundable
	r.TotalTax = money.Max0(r.TaxBeforeCredits-nonrefundable) + r.PTCRepayment
	r.AddStep("Total tax", r.TotalTax, "Form 1040 line 24", "tax before credits - nonrefundable credits, floored at 0")
}
