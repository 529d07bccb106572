package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// adjustments is phase 2: cap each above-the-line adjustment, add the
// deductible half of self-employment tax, and subtract from total income
// to reach AGI.
//
// SE tax and its own deduction are mutually dependent (the deduction
// lowers AGI, not SE tax, but the phases reference each other). Resolved
// here as a documented single pass: SE tax is computed first from gross
// Schedule C profit, and half of it is deducted immediately. No
// iteration; the approximation error is bounded and asserted in tests.
func (p *pipeline) adjustments() {
	adj := p.in.Adjustments
	caps := p.rs.AdjustmentCaps
	r := p.res

	p.computeSelfEmploymentTax()

	capped := func(field string, amount, cap money.Cents) money.Cents {
		if cap > 0 && amount > cap {
			p.warn(domain.CodeAdjustmentCapped, domain.PhaseAdjustments, domain.CategoryCalculation, map[string]string{
				"field":   field,
				"claimed": amount.String(),
				"allowed": cap.String(),
			})
			return cap
		}
		return amount
	}

	educator := capped("educator_expenses", adj.EducatorExpenses, caps.EducatorExpensesMax)
	hsa := capped("hsa_deduction", adj.HSADeduction, caps.HSAMax)
	ira := capped("ira_deduction", adj.IRADeduction, caps.IRAMax)
	studentLoan := capped("student_loan_interest", adj.StudentLoanInterest, caps.StudentLoanInterestMax)

	total := educator + hsa + ira + studentLoan + adj.SERetirementPlans + adj.Other + p.seDeduction
	r.TotalAdjustments = total
	r.AGI = money.Max0(r.TotalIncome - total)

	if educator > 0 {
		r.AddStep("Educator expenses", educator, "Schedule 1 line 11", "")
	}
	if hsa > 0 {
		r.AddStep("HSA deduction", hsa, "Schedule 1 line 13", "")
	}
	if p.seDeduction > 0 {
		r.AddStep("Deductible half of self-employment tax", p.seDeduction, "Schedule 1 line 15", "SE tax x 50%")
	}
	if adj.SERetirementPlans > 0 {
		r.AddStep("Self-employed retirement plans", adj.SERetirementPlans, "Schedule 1 line 16", "")
	}
	if ira > 0 {
		r.AddStep("IRA deduction", ira, "Schedule 1 line 20", "")
	}
	if studentLoan > 0 {
		r.AddStep("Student loan interest", studentLoan, "Schedule 1 line 21", "")
	}
	if adj.Other > 0 {
		r.AddStep("Other adjustments", adj.Other, "Schedule 1 line 24", "")
	}
	r.AddStep("Total adjustments", total, "Schedule 1 line 26", "")
	r.AddStep("Adjusted gross income", r.AGI, "Form 1040 line 11", "total income - adjustments, floored at 0")
}

// computeSelfEmploymentTax fills seNetEarnings, the SE tax component and
// its deductible half. The Social Security portion is capped by the wage
// base net of W-2 wages already subject to OASDI.
func (p *pipeline) computeSelfEmploymentTax() {
	profit := p.in.Income.ScheduleCNetProfit
	if profit <= 0 {
		return
	}
	se := p.rs.SelfEmployment

	netEarnings := money.Mul(profit, se.NetEarningsFactor)
	p.seNetEarnings = netEarnings

	ssRoom := money.Max0(se.WageBase - p.in.Income.Wages)
	ssBase := money.Min(netEarnings, ssRoom)
	if ssBase < netEarnings {
		p.warn(domain.CodeSSWageBaseCapped, domain.PhaseAdditionalTax, domain.CategoryCalculation, map[string]string{
			"wage_base":    se.WageBase.String(),
			"net_earnings": netEarnings.String(),
		})
	}

	ssTax := money.Mul(ssBase, se.SocialSecurityRate)
	medicareTax := money.Mul(netEarnings, se.MedicareRate)
	p.res.SelfEmploymentTax = ssTax + medicareTax
	p.seDeduction = p.res.SelfEmploymentTax / 2
}
