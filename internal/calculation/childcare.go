package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// childCareCredit computes the nonrefundable child and dependent care
// credit. Applicable expenses cap at the one/two-plus qualifying-person
// limits, then by the lesser of the taxpayer's and spouse's earned income
// (a student or disabled spouse is deemed monthly income for those
// months). The credit rate steps down from 35% toward a 20% floor as AGI
// rises in $2,000 increments above $15,000. The increment count rounds
// up, so one dollar into an increment takes the full step.
func childCareCredit(in *domain.TaxpayerInput, ctx creditContext, rules domain.CDCCRules) creditResult {
	if in.ChildCare.Expenses <= 0 || in.ChildCare.QualifyingPeople <= 0 {
		return creditResult{}
	}

	cap := rules.ExpenseCapOne
	deemedMonthly := rules.DeemedMonthlyIncomeOne
	if in.ChildCare.QualifyingPeople >= 2 {
		cap = rules.ExpenseCapTwoPlus
		deemedMonthly = rules.DeemedMonthlyIncomeTwoPlus
	}
	expenses := money.Min(in.ChildCare.Expenses, cap)

	// Earned-income cap. On a joint return both spouses must have
	// earnings; the deemed-income substitution covers student/disabled
	// months. The engine tracks household earned income, so the spouse
	// side is modeled only through the deemed substitution.
	expenses = money.Min(expenses, ctx.EarnedIncome)
	if in.FilingStatus == domain.MarriedFilingJointly && in.ChildCare.SpouseStudentMonths > 0 {
		deemed := money.Cents(in.ChildCare.SpouseStudentMonths) * deemedMonthly
		expenses = money.Min(expenses, deemed)
	}
	if expenses <= 0 {
		return creditResult{}
	}

	rate := rules.MaxRate
	if over := ctx.AGI - rules.AGIStart; over > 0 {
		steps := money.CeilDiv(over, rules.AGIStep)
		rate = rate.Sub(rules.RateStep.Mul(decimal.NewFromInt(steps)))
		if rate.LessThan(rules.MinRate) {
			rate = rules.MinRate
		}
	}

	return creditResult{
		Amount:          money.Mul(expenses, rate),
		PhaseOutApplied: rate.LessThan(rules.MaxRate),
	}
}
