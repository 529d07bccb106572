package config

import (
	"fmt"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// Validate runs schema and cross-field consistency checks on a taxpayer
// record, returning every problem found. An empty slice means the record
// is safe to compute.
func Validate(input *domain.TaxpayerInput) []domain.FieldError {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if input.Year < 1913 {
		add("year", "tax year %d is not valid", input.Year)
	}
	if !input.FilingStatus.Valid() {
		add("filing_status", "unknown filing status %q", input.FilingStatus)
	}
	if input.Primary.BirthDate.IsZero() {
		add("primary.birth_date", "birth date is required")
	}
	if input.FilingStatus == domain.MarriedFilingJointly && input.Spouse == nil {
		add("spouse", "spouse record is required for married filing jointly")
	}
	if input.Spouse != nil && input.Spouse.BirthDate.IsZero() {
		add("spouse.birth_date", "birth date is required")
	}
	for i, d := range input.Dependents {
		if d.BirthDate.IsZero() {
			add(fmt.Sprintf("dependents[%d].birth_date", i), "birth date is required")
		} else if d.BirthDate.Year() > input.Year {
			add(fmt.Sprintf("dependents[%d].birth_date", i), "born after the tax year")
		}
	}

	// Negative-value policing, in declaration order so identical inputs
	// produce identical error lists. Capital gains and Schedule C/E are
	// documented net-of-loss and skipped.
	nonNegative := []struct {
		field string
		value money.Cents
	}{
		{"income.wages", input.Income.Wages},
		{"income.taxable_interest", input.Income.TaxableInterest},
		{"income.tax_exempt_interest", input.Income.TaxExemptInterest},
		{"income.ordinary_dividends", input.Income.OrdinaryDividends},
		{"income.qualified_dividends", input.Income.QualifiedDividends},
		{"income.retirement_distributions", input.Income.RetirementDistributions},
		{"income.social_security_benefits", input.Income.SocialSecurityBenefits},
		{"income.unemployment", input.Income.Unemployment},
		{"income.other", input.Income.Other},
		{"adjustments.educator_expenses", input.Adjustments.EducatorExpenses},
		{"adjustments.hsa_deduction", input.Adjustments.HSADeduction},
		{"adjustments.ira_deduction", input.Adjustments.IRADeduction},
		{"adjustments.se_retirement_plans", input.Adjustments.SERetirementPlans},
		{"adjustments.student_loan_interest", input.Adjustments.StudentLoanInterest},
		{"adjustments.other", input.Adjustments.Other},
		{"itemized.state_local_taxes", input.Itemized.StateLocalTaxes},
		{"itemized.mortgage_interest", input.Itemized.MortgageInterest},
		{"itemized.charitable", input.Itemized.Charitable},
		{"itemized.medical_expenses", input.Itemized.MedicalExpenses},
		{"itemized.other", input.Itemized.Other},
		{"payments.federal_withholding", input.Payments.FederalWithholding},
		{"payments.estimated_payments", input.Payments.EstimatedPayments},
		{"payments.other", input.Payments.Other},
		{"child_care.expenses", input.ChildCare.Expenses},
		{"foreign_tax.paid", input.ForeignTax.Paid},
		{"foreign_tax.source_income", input.ForeignTax.SourceIncome},
		{"retirement_contributions", input.RetirementContributions},
	}
	for _, c := range nonNegative {
		if c.value < 0 {
			add(c.field, "must not be negative")
		}
	}

	if input.Income.QualifiedDividends > input.Income.OrdinaryDividends {
		add("income.qualified_dividends", "cannot exceed ordinary dividends")
	}
	if input.ChildCare.Expenses > 0 && input.ChildCare.QualifyingPeople <= 0 {
		add("child_care.qualifying_people", "required when care expenses are claimed")
	}
	if input.ChildCare.SpouseStudentMonths < 0 || input.ChildCare.SpouseStudentMonths > 12 {
		add("child_care.spouse_student_months", "must be between 0 and 12")
	}

	seen := make(map[string]domain.EducationCreditKind)
	for i, s := range input.Education {
		if s.QualifiedExpenses < 0 {
			add(fmt.Sprintf("education[%d].qualified_expenses", i), "must not be negative")
		}
		switch s.Credit {
		case domain.AmericanOpportunity, domain.LifetimeLearning:
		default:
			add(fmt.Sprintf("education[%d].credit", i), "must be %q or %q", domain.AmericanOpportunity, domain.LifetimeLearning)
		}
		if prev, ok := seen[s.Student]; ok && prev != s.Credit {
			add(fmt.Sprintf("education[%d]", i), "student %q claims both education credits; they are mutually exclusive", s.Student)
		}
		seen[s.Student] = s.Credit
	}

	if input.PremiumTaxCredit != nil {
		if input.PremiumTaxCredit.BenchmarkPremium < 0 {
			add("premium_tax_credit.benchmark_premium", "must not be negative")
		}
		if input.PremiumTaxCredit.AdvanceReceived < 0 {
			add("premium_tax_credit.advance_received", "must not be negative")
		}
	}

	if input.State != nil {
		if input.State.State == "" {
			add("state_input.state", "state code is required")
		}
		if input.State.Withholding < 0 {
			add("state_input.withholding", "must not be negative")
		}
		if input.State.EstimatedPayments < 0 {
			add("state_input.estimated_payments", "must not be negative")
		}
		if input.State.Additions < 0 || input.State.Subtractions < 0 {
			add("state_input", "additions and subtractions must not be negative")
		}
	}

	return errs
}
