package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/internal/rules"
	"github.com/piechiang/taxengine/pkg/money"
)

func creditCtx(status domain.FilingStatus, agi, earned money.Cents) creditContext {
	return creditContext{
		Year:             2025,
		FilingStatus:     status,
		AGI:              agi,
		EarnedIncome:     earned,
		TaxableIncome:    agi,
		TaxBeforeCredits: money.FromDollars(50000),
	}
}

func TestChildTaxCredit(t *testing.T) {
	d := money.FromDollars
	ctcRules := rules.Federal2025().CTC

	in := baseInput(domain.MarriedFilingJointly)
	in.Dependents = []domain.Dependent{
		{Name: "a", BirthDate: birthDate(2018)},
		{Name: "b", BirthDate: birthDate(2020)},
		{Name: "c", BirthDate: birthDate(2004)}, // 21, other dependent
	}

	t.Run("below phase-out", func(t *testing.T) {
		res := childTaxCredit(in, creditCtx(domain.MarriedFilingJointly, d(150000), d(150000)), ctcRules)
		assert.Equal(t, d(4500), res.Amount)
		assert.False(t, res.PhaseOutApplied)
	})

	t.Run("one dollar over the threshold costs a full step", func(t *testing.T) {
		res := childTaxCredit(in, creditCtx(domain.MarriedFilingJointly, d(400000)+100, d(150000)), ctcRules)
		assert.Equal(t, d(4450), res.Amount)
		assert.True(t, res.PhaseOutApplied)
	})

	t.Run("fully phased out", func(t *testing.T) {
		res := childTaxCredit(in, creditCtx(domain.MarriedFilingJointly, d(600000), d(150000)), ctcRules)
		assert.Equal(t, money.Cents(0), res.Amount)
		assert.True(t, res.PhaseOutApplied)
	})

	t.Run("no dependents yields nothing", func(t *testing.T) {
		res := childTaxCredit(baseInput(domain.Single), creditCtx(domain.Single, d(50000), d(50000)), ctcRules)
		assert.Equal(t, money.Cents(0), res.Amount)
	})
}

func TestAdditionalChildTaxCredit(t *testing.T) {
	d := money.FromDollars
	ctcRules := rules.Federal2025().CTC

	in := baseInput(domain.Single)
	in.Dependents = []domain.Dependent{{Name: "a", BirthDate: birthDate(2019)}}

	t.Run("earned-income limited", func(t *testing.T) {
		// 15% of (12,500 - 2,500) = 1,500, below both the unused amount
		// and the per-child cap.
		got := additionalChildTaxCredit(in, creditCtx(domain.Single, d(12500), d(12500)), ctcRules, d(2000))
		assert.Equal(t, d(1500), got)
	})

	t.Run("per-child cap binds", func(t *testing.T) {
		got := additionalChildTaxCredit(in, creditCtx(domain.Single, d(40000), d(40000)), ctcRules, d(2000))
		assert.Equal(t, d(1700), got)
	})

	t.Run("no unused credit", func(t *testing.T) {
		assert.Equal(t, money.Cents(0),
			additionalChildTaxCredit(in, creditCtx(domain.Single, d(40000), d(40000)), ctcRules, 0))
	})
}

func TestEarnedIncomeCredit(t *testing.T) {
	d := money.FromDollars
	eitcRules := rules.Federal2025().EITC

	t.Run("phase-in region", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Income.Wages = d(10000)
		in.Dependents = []domain.Dependent{{Name: "a", BirthDate: birthDate(2018)}}

		res := earnedIncomeCredit(in, creditCtx(domain.Single, d(10000), d(10000)), eitcRules)
		assert.Equal(t, d(3400), res.Refundable)
		assert.Equal(t, money.Cents(0), res.Amount)
		assert.False(t, res.PhaseOutApplied)
	})

	t.Run("plateau at table maximum", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Income.Wages = d(15000)
		in.Dependents = []domain.Dependent{{Name: "a", BirthDate: birthDate(2018)}}

		res := earnedIncomeCredit(in, creditCtx(domain.Single, d(15000), d(15000)), eitcRules)
		assert.Equal(t, d(4328), res.Refundable)
	})

	t.Run("phase-out uses the higher of earned income and AGI", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Income.Wages = d(15000)
		in.Dependents = []domain.Dependent{{Name: "a", BirthDate: birthDate(2018)}}

		low := earnedIncomeCredit(in, creditCtx(domain.Single, d(15000), d(15000)), eitcRules)
		high := earnedIncomeCredit(in, creditCtx(domain.Single, d(30000), d(15000)), eitcRules)
		assert.Less(t, high.Refundable, low.Refundable)
		assert.True(t, high.PhaseOutApplied)
	})

	t.Run("investment income disqualifies", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Income.Wages = d(10000)
		in.Income.TaxableInterest = d(12000)

		res := earnedIncomeCredit(in, creditCtx(domain.Single, d(22000), d(10000)), eitcRules)
		assert.Equal(t, money.Cents(0), res.Refundable)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, domain.CodeEITCInvestmentIncome, res.Diagnostics[0].Code)
	})

	t.Run("no earned income yields nothing", func(t *testing.T) {
		res := earnedIncomeCredit(baseInput(domain.Single), creditCtx(domain.Single, d(5000), 0), eitcRules)
		assert.Equal(t, money.Cents(0), res.Refundable)
	})

	t.Run("child age limit comes from the rules", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Income.Wages = d(10000)
		in.Dependents = []domain.Dependent{{Name: "a", BirthDate: birthDate(2007)}}

		res := earnedIncomeCredit(in, creditCtx(domain.Single, d(10000), d(10000)), eitcRules)
		assert.Equal(t, d(3400), res.Refundable)

		strict := eitcRules
		strict.ChildAgeLimit = 17
		res = earnedIncomeCredit(in, creditCtx(domain.Single, d(10000), d(10000)), strict)
		assert.Equal(t, d(649), res.Refundable)
	})
}

func TestChildCareCredit(t *testing.T) {
	d := money.FromDollars
	careRules := rules.Federal2025().ChildCare

	t.Run("max rate at low AGI", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.ChildCare = domain.ChildCare{Expenses: d(6000), QualifyingPeople: 1}

		res := childCareCredit(in, creditCtx(domain.Single, d(15000), d(15000)), careRules)
		assert.Equal(t, d(1050), res.Amount) // 3,000 cap x 35%
		assert.False(t, res.PhaseOutApplied)
	})

	t.Run("rate steps down and floors at 20%", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.ChildCare = domain.ChildCare{Expenses: d(6000), QualifyingPeople: 2}

		res := childCareCredit(in, creditCtx(domain.Single, d(43000), d(50000)), careRules)
		assert.Equal(t, d(1260), res.Amount) // 6,000 cap x 21%
		assert.True(t, res.PhaseOutApplied)

		floor := childCareCredit(in, creditCtx(domain.Single, d(200000), d(200000)), careRules)
		assert.Equal(t, d(1200), floor.Amount) // 6,000 cap x 20%
	})

	t.Run("earned income caps expenses", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.ChildCare = domain.ChildCare{Expenses: d(3000), QualifyingPeople: 1}

		res := childCareCredit(in, creditCtx(domain.Single, d(2000), d(2000)), careRules)
		assert.Equal(t, d(700), res.Amount) // 2,000 x 35%
	})

	t.Run("deemed income for a student spouse", func(t *testing.T) {
		in := baseInput(domain.MarriedFilingJointly)
		in.ChildCare = domain.ChildCare{Expenses: d(6000), QualifyingPeople: 1, SpouseStudentMonths: 9}

		res := childCareCredit(in, creditCtx(domain.MarriedFilingJointly, d(15000), d(50000)), careRules)
		assert.Equal(t, money.Mul(d(2250), careRules.MaxRate), res.Amount) // 9 x 250 deemed
	})
}

func TestEducationCredits(t *testing.T) {
	d := money.FromDollars
	eduRules := rules.Federal2025().Education

	t.Run("AOTC tiers and refundable split", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Education = []domain.StudentExpense{
			{Student: "s1", QualifiedExpenses: d(4000), Credit: domain.AmericanOpportunity},
		}

		res := educationCredits(in, creditCtx(domain.Single, d(50000), d(50000)), eduRules)
		assert.Equal(t, d(1500), res.Amount)
		assert.Equal(t, d(1000), res.Refundable)
		assert.False(t, res.PhaseOutApplied)
	})

	t.Run("AOTC phase-out midpoint", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Education = []domain.StudentExpense{
			{Student: "s1", QualifiedExpenses: d(4000), Credit: domain.AmericanOpportunity},
		}

		res := educationCredits(in, creditCtx(domain.Single, d(85000), d(85000)), eduRules)
		assert.Equal(t, d(750), res.Amount)
		assert.Equal(t, d(500), res.Refundable)
		assert.True(t, res.PhaseOutApplied)
	})

	t.Run("LLC pools expenses across students", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.Education = []domain.StudentExpense{
			{Student: "s1", QualifiedExpenses: d(6000), Credit: domain.LifetimeLearning},
			{Student: "s2", QualifiedExpenses: d(6000), Credit: domain.LifetimeLearning},
		}

		// 12,000 of pooled expenses caps at 10,000 x 20%.
		res := educationCredits(in, creditCtx(domain.Single, d(50000), d(50000)), eduRules)
		assert.Equal(t, d(2000), res.Amount)
		assert.Equal(t, money.Cents(0), res.Refundable)
	})
}

func TestSaversCredit(t *testing.T) {
	d := money.FromDollars
	saversRules := rules.Federal2025().Savers

	t.Run("first tier rate with joint cap", func(t *testing.T) {
		in := baseInput(domain.MarriedFilingJointly)
		in.RetirementContributions = d(5000)

		res := saversCredit(in, creditCtx(domain.MarriedFilingJointly, d(40000), d(40000)), saversRules)
		assert.Equal(t, d(2000), res.Amount) // 4,000 capped x 50%
	})

	t.Run("middle tier", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.RetirementContributions = d(2000)

		res := saversCredit(in, creditCtx(domain.Single, d(25000), d(25000)), saversRules)
		assert.Equal(t, d(400), res.Amount)
	})

	t.Run("over every tier", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.RetirementContributions = d(2000)

		res := saversCredit(in, creditCtx(domain.Single, d(60000), d(60000)), saversRules)
		assert.Equal(t, money.Cents(0), res.Amount)
		assert.True(t, res.PhaseOutApplied)
	})
}

func TestForeignTaxCredit(t *testing.T) {
	d := money.FromDollars

	t.Run("limited by foreign-income share", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.ForeignTax = domain.ForeignTax{Paid: d(1500), SourceIncome: d(10000)}

		ctx := creditCtx(domain.Single, d(50000), d(50000))
		ctx.TaxableIncome = d(50000)
		ctx.TaxBeforeCredits = d(5000)

		res := foreignTaxCredit(in, ctx)
		assert.Equal(t, d(1000), res.Amount) // 5,000 x 10,000/50,000
	})

	t.Run("paid below the limit", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.ForeignTax = domain.ForeignTax{Paid: d(500), SourceIncome: d(10000)}

		ctx := creditCtx(domain.Single, d(50000), d(50000))
		ctx.TaxableIncome = d(50000)
		ctx.TaxBeforeCredits = d(5000)

		assert.Equal(t, d(500), foreignTaxCredit(in, ctx).Amount)
	})
}

func TestReconcilePremiumTaxCredit(t *testing.T) {
	d := money.FromDollars
	ptcRules := rules.Federal2025().PremiumTax

	t.Run("allowed exceeds advance", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.PremiumTaxCredit = &domain.PremiumTaxCredit{BenchmarkPremium: d(6000), AdvanceReceived: d(2000)}

		refundable, repayment := reconcilePremiumTaxCredit(in, creditCtx(domain.Single, d(40000), d(40000)), ptcRules)
		assert.Equal(t, d(600), refundable) // allowed 2,600 less advance
		assert.Equal(t, money.Cents(0), repayment)
	})

	t.Run("advance exceeds allowed", func(t *testing.T) {
		in := baseInput(domain.Single)
		in.PremiumTaxCredit = &domain.PremiumTaxCredit{BenchmarkPremium: d(6000), AdvanceReceived: d(3000)}

		refundable, repayment := reconcilePremiumTaxCredit(in, creditCtx(domain.Single, d(40000), d(40000)), ptcRules)
		assert.Equal(t, money.Cents(0), refundable)
		assert.Equal(t, d(400), repayment)
	})

	t.Run("no marketplace record", func(t *testing.T) {
		refundable, repayment := reconcilePremiumTaxCredit(baseInput(domain.Single), creditCtx(domain.Single, d(40000), d(40000)), ptcRules)
		assert.Equal(t, money.Cents(0), refundable)
		assert.Equal(t, money.Cents(0), repayment)
	})
}
