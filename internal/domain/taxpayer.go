package domain

import (
	"time"

	"github.com/piechiang/taxengine/pkg/money"
)

// FilingStatus identifies the federal filing status.
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "married_filing_jointly"
	MarriedFilingSeparately FilingStatus = "married_filing_separately"
	HeadOfHousehold         FilingStatus = "head_of_household"
)

// Valid reports whether fs is one of the four supported statuses.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold:
		return true
	}
	return false
}

// IsMarried reports whether fs is one of the married statuses.
func (fs FilingStatus) IsMarried() bool {
	return fs == MarriedFilingJointly || fs == MarriedFilingSeparately
}

// Person holds the demographic facts used to size deductions.
type Person struct {
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
	Blind     bool      `yaml:"blind" json:"blind"`
}

// AgeAtYearEnd returns the person's age on December 31 of the tax year.
// Age is always measured against tax-year-end, never wall-clock now, so
// a calculation is reproducible regardless of when it runs.
func (p Person) AgeAtYearEnd(year int) int {
	asOf := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	age := asOf.Year() - p.BirthDate.Year()
	if asOf.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

// Dependent is a claimed dependent.
type Dependent struct {
	Name      string    `yaml:"name" json:"name"`
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
	// IsStudent matters for ages 19-23 qualifying-child determinations.
	IsStudent bool `yaml:"is_student" json:"is_student"`
}

// Income holds the per-category income sub-records. All fields are
// non-negative cents except those documented as net-of-loss.
type Income struct {
	Wages             money.Cents `yaml:"wages" json:"wages"`
	TaxableInterest   money.Cents `yaml:"taxable_interest" json:"taxable_interest"`
	TaxExemptInterest money.Cents `yaml:"tax_exempt_interest" json:"tax_exempt_interest"`
	// OrdinaryDividends is the total; QualifiedDividends is the subset
	// eligible for preferential rates.
	OrdinaryDividends  money.Cents `yaml:"ordinary_dividends" json:"ordinary_dividends"`
	QualifiedDividends money.Cents `yaml:"qualified_dividends" json:"qualified_dividends"`
	// Net capital gains may be negative (net-of-loss).
	ShortTermCapitalGains money.Cents `yaml:"short_term_capital_gains" json:"short_term_capital_gains"`
	LongTermCapitalGains  money.Cents `yaml:"long_term_capital_gains" json:"long_term_capital_gains"`
	// ScheduleCNetProfit may be negative (net-of-loss).
	ScheduleCNetProfit money.Cents `yaml:"schedule_c_net_profit" json:"schedule_c_net_profit"`
	// ScheduleEIncome aggregates rental/royalty/K-1 and may be negative.
	ScheduleEIncome         money.Cents `yaml:"schedule_e_income" json:"schedule_e_income"`
	RetirementDistributions money.Cents `yaml:"retirement_distributions" json:"retirement_distributions"`
	SocialSecurityBenefits  money.Cents `yaml:"social_security_benefits" json:"social_security_benefits"`
	Unemployment            money.Cents `yaml:"unemployment" json:"unemployment"`
	Other                   money.Cents `yaml:"other" json:"other"`
}

// Adjustments holds above-the-line adjustment amounts. Each is capped
// independently by the rule set before being subtracted from total income.
type Adjustments struct {
	EducatorExpenses    money.Cents `yaml:"educator_expenses" json:"educator_expenses"`
	HSADeduction        money.Cents `yaml:"hsa_deduction" json:"hsa_deduction"`
	IRADeduction        money.Cents `yaml:"ira_deduction" json:"ira_deduction"`
	SERetirementPlans   money.Cents `yaml:"se_retirement_plans" json:"se_retirement_plans"`
	StudentLoanInterest money.Cents `yaml:"student_loan_interest" json:"student_loan_interest"`
	Other               money.Cents `yaml:"other" json:"other"`
}

// ItemizedDeductions holds the Schedule A components.
type ItemizedDeductions struct {
	StateLocalTaxes  money.Cents `yaml:"state_local_taxes" json:"state_local_taxes"`
	MortgageInterest money.Cents `yaml:"mortgage_interest" json:"mortgage_interest"`
	Charitable       money.Cents `yaml:"charitable" json:"charitable"`
	// MedicalExpenses is the gross amount; only the excess over the AGI
	// floor is deductible.
	MedicalExpenses money.Cents `yaml:"medical_expenses" json:"medical_expenses"`
	Other           money.Cents `yaml:"other" json:"other"`
}

// Payments holds withholding and estimated payments.
type Payments struct {
	FederalWithholding money.Cents `yaml:"federal_withholding" json:"federal_withholding"`
	EstimatedPayments  money.Cents `yaml:"estimated_payments" json:"estimated_payments"`
	Other              money.Cents `yaml:"other" json:"other"`
}

// ChildCare holds the child/dependent care credit inputs.
type ChildCare struct {
	Expenses         money.Cents `yaml:"expenses" json:"expenses"`
	QualifyingPeople int         `yaml:"qualifying_people" json:"qualifying_people"`
	// SpouseStudentMonths is the number of months the spouse was a
	// full-time student or disabled; deemed income substitutes for those
	// months when capping by spouse earned income.
	SpouseStudentMonths int `yaml:"spouse_student_months" json:"spouse_student_months"`
}

// EducationCreditKind selects which education credit a student claims.
type EducationCreditKind string

const (
	AmericanOpportunity EducationCreditKind = "aotc"
	LifetimeLearning    EducationCreditKind = "llc"
)

// StudentExpense is one student's qualified education expenses for the
// year. AOTC and LLC are mutually exclusive per student.
type StudentExpense struct {
	Student           string              `yaml:"student" json:"student"`
	QualifiedExpenses money.Cents         `yaml:"qualified_expenses" json:"qualified_expenses"`
	Credit            EducationCreditKind `yaml:"credit" json:"credit"`
}

// ForeignTax holds foreign tax credit inputs.
type ForeignTax struct {
	Paid         money.Cents `yaml:"paid" json:"paid"`
	SourceIncome money.Cents `yaml:"source_income" json:"source_income"`
}

// PremiumTaxCredit holds the marketplace-coverage reconciliation inputs.
type PremiumTaxCredit struct {
	BenchmarkPremium money.Cents `yaml:"benchmark_premium" json:"benchmark_premium"`
	AdvanceReceived  money.Cents `yaml:"advance_received" json:"advance_received"`
}

// Options are the named booleans controlling optional computations.
type Options struct {
	ComputeAMT                bool `yaml:"compute_amt" json:"compute_amt"`
	ComputeNIIT               bool `yaml:"compute_niit" json:"compute_niit"`
	ComputeAdditionalMedicare bool `yaml:"compute_additional_medicare" json:"compute_additional_medicare"`
	ApplyQBI                  bool `yaml:"apply_qbi" json:"apply_qbi"`
	// ForceItemized uses the itemized deduction even when the standard
	// deduction is larger. A warning is emitted in that case.
	ForceItemized bool `yaml:"force_itemized" json:"force_itemized"`
}

// StateInput holds the state-specific companion record.
type StateInput struct {
	State             string      `yaml:"state" json:"state"`
	County            string      `yaml:"county" json:"county"`
	Additions         money.Cents `yaml:"additions" json:"additions"`
	Subtractions      money.Cents `yaml:"subtractions" json:"subtractions"`
	Withholding       money.Cents `yaml:"withholding" json:"withholding"`
	EstimatedPayments money.Cents `yaml:"estimated_payments" json:"estimated_payments"`
}

// TaxpayerInput is the immutable per-calculation record. It is fully
// value-typed; the engine never mutates it and never retains it.
type TaxpayerInput struct {
	Year         int          `yaml:"year" json:"year"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`

	Primary    Person      `yaml:"primary" json:"primary"`
	Spouse     *Person     `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	Dependents []Dependent `yaml:"dependents,omitempty" json:"dependents,omitempty"`

	Income      Income             `yaml:"income" json:"income"`
	Adjustments Adjustments        `yaml:"adjustments" json:"adjustments"`
	Itemized    ItemizedDeductions `yaml:"itemized" json:"itemized"`
	Payments    Payments           `yaml:"payments" json:"payments"`

	// QBIIncome is the qualified business income for the QBI deduction;
	// defaults to Schedule C net profit when zero.
	QBIIncome money.Cents `yaml:"qbi_income" json:"qbi_income"`

	ChildCare               ChildCare         `yaml:"child_care" json:"child_care"`
	Education               []StudentExpense  `yaml:"education,omitempty" json:"education,omitempty"`
	ForeignTax              ForeignTax        `yaml:"foreign_tax" json:"foreign_tax"`
	RetirementContributions money.Cents       `yaml:"retirement_contributions" json:"retirement_contributions"`
	PremiumTaxCredit        *PremiumTaxCredit `yaml:"premium_tax_credit,omitempty" json:"premium_tax_credit,omitempty"`

	Options Options     `yaml:"options" json:"options"`
	State   *StateInput `yaml:"state_input,omitempty" json:"state_input,omitempty"`
}

// EarnedIncome is wages plus net self-employment profit (floored at zero),
// the base used by EITC, ACTC and the child-care credit.
func (t *TaxpayerInput) EarnedIncome() money.Cents {
	return t.Income.Wages + money.Max0(t.Income.ScheduleCNetProfit)
}

// InvestmentIncome approximates the EITC disqualification base: interest
// (taxable and exempt), dividends and net capital gains.
func (t *TaxpayerInput) InvestmentIncome() money.Cents {
	gains := money.Max0(t.Income.ShortTermCapitalGains + t.Income.LongTermCapitalGains)
	return t.Income.TaxableInterest + t.Income.TaxExemptInterest + t.Income.OrdinaryDividends + gains
}

// QualifyingChildren counts dependents under the age limit at year end.
func (t *TaxpayerInput) QualifyingChildren(ageLimit int) int {
	n := 0
	for _, d := range t.Dependents {
		p := Person{BirthDate: d.BirthDate}
		if p.AgeAtYearEnd(t.Year) < ageLimit {
			n++
		}
	}
	return n
}
