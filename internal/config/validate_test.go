package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

func validInput() *domain.TaxpayerInput {
	return &domain.TaxpayerInput{
		Year:         2025,
		FilingStatus: domain.Single,
		Primary:      domain.Person{BirthDate: time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func fields(errs []domain.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateAcceptsCleanRecord(t *testing.T) {
	assert.Empty(t, Validate(validInput()))
}

func TestValidateSchemaProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.TaxpayerInput)
		field   string
	}{
		{"bad year", func(in *domain.TaxpayerInput) { in.Year = 1900 }, "year"},
		{"unknown filing status", func(in *domain.TaxpayerInput) { in.FilingStatus = "widowed" }, "filing_status"},
		{"missing birth date", func(in *domain.TaxpayerInput) { in.Primary.BirthDate = time.Time{} }, "primary.birth_date"},
		{"mfj without spouse", func(in *domain.TaxpayerInput) { in.FilingStatus = domain.MarriedFilingJointly }, "spouse"},
		{"negative wages", func(in *domain.TaxpayerInput) { in.Income.Wages = -1 }, "income.wages"},
		{"negative withholding", func(in *domain.TaxpayerInput) { in.Payments.FederalWithholding = -1 }, "payments.federal_withholding"},
		{"qualified over ordinary dividends", func(in *domain.TaxpayerInput) {
			in.Income.QualifiedDividends = money.FromDollars(500)
			in.Income.OrdinaryDividends = money.FromDollars(100)
		}, "income.qualified_dividends"},
		{"care expenses without qualifying people", func(in *domain.TaxpayerInput) {
			in.ChildCare.Expenses = money.FromDollars(2000)
		}, "child_care.qualifying_people"},
		{"spouse student months out of range", func(in *domain.TaxpayerInput) {
			in.ChildCare.SpouseStudentMonths = 13
		}, "child_care.spouse_student_months"},
		{"state record without code", func(in *domain.TaxpayerInput) {
			in.State = &domain.StateInput{}
		}, "state_input.state"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			errs := Validate(in)
			require.NotEmpty(t, errs)
			assert.Contains(t, fields(errs), tt.field)
		})
	}
}

func TestValidateDependents(t *testing.T) {
	in := validInput()
	in.Dependents = []domain.Dependent{
		{Name: "ok", BirthDate: time.Date(2018, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "missing"},
		{Name: "future", BirthDate: time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}
	errs := Validate(in)
	got := fields(errs)
	assert.Contains(t, got, "dependents[1].birth_date")
	assert.Contains(t, got, "dependents[2].birth_date")
	assert.NotContains(t, got, "dependents[0].birth_date")
}

func TestValidateEducationExclusivity(t *testing.T) {
	in := validInput()
	in.Education = []domain.StudentExpense{
		{Student: "s1", QualifiedExpenses: money.FromDollars(4000), Credit: domain.AmericanOpportunity},
		{Student: "s1", QualifiedExpenses: money.FromDollars(2000), Credit: domain.LifetimeLearning},
	}
	errs := Validate(in)
	require.NotEmpty(t, errs)
	assert.Contains(t, fields(errs), "education[1]")

	t.Run("unknown credit kind", func(t *testing.T) {
		in := validInput()
		in.Education = []domain.StudentExpense{{Student: "s1", Credit: "scholarship"}}
		assert.Contains(t, fields(Validate(in)), "education[0].credit")
	})

	t.Run("same credit twice is fine", func(t *testing.T) {
		in := validInput()
		in.Education = []domain.StudentExpense{
			{Student: "s1", QualifiedExpenses: money.FromDollars(1000), Credit: domain.LifetimeLearning},
			{Student: "s1", QualifiedExpenses: money.FromDollars(1000), Credit: domain.LifetimeLearning},
		}
		assert.Empty(t, Validate(in))
	})
}

// Identical inputs must produce identical error lists, field order
// included, so zeroed results carry byte-identical diagnostics.
func TestValidateErrorOrderDeterministic(t *testing.T) {
	build := func() *domain.TaxpayerInput {
		in := validInput()
		in.Income.Wages = -1
		in.Income.Unemployment = -1
		in.Adjustments.HSADeduction = -1
		in.Payments.Other = -1
		in.ChildCare.Expenses = -1
		return in
	}

	want := []string{
		"income.wages",
		"income.unemployment",
		"adjustments.hsa_deduction",
		"payments.other",
		"child_care.expenses",
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, fields(Validate(build())))
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	in := validInput()
	in.Year = 0
	in.FilingStatus = "x"
	in.Income.Wages = -1
	errs := Validate(in)
	assert.GreaterOrEqual(t, len(errs), 3)
}
