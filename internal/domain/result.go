package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/pkg/money"
)

// CalculationStep is one line of the itemized calculation trail. Steps are
// append-only and purely observational; the engine never reads them back.
type CalculationStep struct {
	Description string      `json:"description" yaml:"description"`
	Amount      money.Cents `json:"amount" yaml:"amount"`
	Source      string      `json:"source,omitempty" yaml:"source,omitempty"`
	Formula     string      `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// DeductionType records which deduction the federal pipeline used.
type DeductionType string

const (
	DeductionStandard DeductionType = "standard"
	DeductionItemized DeductionType = "itemized"
)

// FederalResult is the terminal output of the federal pipeline. It is
// always returned, even on error; callers must check Diagnostics.HasErrors
// before trusting the monetary fields (which are zeroed on error).
type FederalResult struct {
	RunID        uuid.UUID    `json:"run_id" yaml:"run_id"`
	Year         int          `json:"year" yaml:"year"`
	FilingStatus FilingStatus `json:"filing_status" yaml:"filing_status"`

	TotalIncome           money.Cents   `json:"total_income" yaml:"total_income"`
	TaxableSocialSecurity money.Cents   `json:"taxable_social_security" yaml:"taxable_social_security"`
	TotalAdjustments      money.Cents   `json:"total_adjustments" yaml:"total_adjustments"`
	AGI                   money.Cents   `json:"agi" yaml:"agi"`
	StandardDeduction     money.Cents   `json:"standard_deduction" yaml:"standard_deduction"`
	ItemizedDeduction     money.Cents   `json:"itemized_deduction" yaml:"itemized_deduction"`
	DeductionUsed         money.Cents   `json:"deduction_used" yaml:"deduction_used"`
	DeductionType         DeductionType `json:"deduction_type" yaml:"deduction_type"`
	QBIDeduction          money.Cents   `json:"qbi_deduction" yaml:"qbi_deduction"`
	TaxableIncome         money.Cents   `json:"taxable_income" yaml:"taxable_income"`

	RegularTax            money.Cents `json:"regular_tax" yaml:"regular_tax"`
	CapitalGainsTax       money.Cents `json:"capital_gains_tax" yaml:"capital_gains_tax"`
	AMT                   money.Cents `json:"amt" yaml:"amt"`
	SelfEmploymentTax     money.Cents `json:"self_employment_tax" yaml:"self_employment_tax"`
	NIIT                  money.Cents `json:"niit" yaml:"niit"`
	AdditionalMedicareTax money.Cents `json:"additional_medicare_tax" yaml:"additional_medicare_tax"`
	TaxBeforeCredits      money.Cents `json:"tax_before_credits" yaml:"tax_before_credits"`

	NonrefundableCredits money.Cents `json:"nonrefundable_credits" yaml:"nonrefundable_credits"`
	RefundableCredits    money.Cents `json:"refundable_credits" yaml:"refundable_credits"`
	PTCRepayment         money.Cents `json:"ptc_repayment" yaml:"ptc_repayment"`
	// EITC and ChildTaxCredit are broken out because state engines
	// derive their own credits as a percentage of these.
	EITC           money.Cents `json:"eitc" yaml:"eitc"`
	ChildTaxCredit money.Cents `json:"child_tax_credit" yaml:"child_tax_credit"`

	TotalTax      money.Cents `json:"total_tax" yaml:"total_tax"`
	TotalPayments money.Cents `json:"total_payments" yaml:"total_payments"`
	// RefundOrOwed is signed: positive is a refund, negative is owed.
	RefundOrOwed money.Cents `json:"refund_or_owed" yaml:"refund_or_owed"`

	EffectiveRate decimal.Decimal `json:"effective_rate" yaml:"effective_rate"`
	MarginalRate  decimal.Decimal `json:"marginal_rate" yaml:"marginal_rate"`

	Steps       []CalculationStep `json:"steps,omitempty" yaml:"steps,omitempty"`
	Diagnostics Diagnostics       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// AddStep appends one calculation-trail entry.
func (r *FederalResult) AddStep(description string, amount money.Cents, source, formula string) {
	r.Steps = append(r.Steps, CalculationStep{Description: description, Amount: amount, Source: source, Formula: formula})
}

// AddDiagnostic appends a diagnostic.
func (r *FederalResult) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Zero clears every monetary field, preserving identity, steps and
// diagnostics. Called when a blocking error invalidates the run.
func (r *FederalResult) Zero() {
	r.TotalIncome = 0
	r.TaxableSocialSecurity = 0
	r.TotalAdjustments = 0
	r.AGI = 0
	r.StandardDeduction = 0
	r.ItemizedDeduction = 0
	r.DeductionUsed = 0
	r.DeductionType = ""
	r.QBIDeduction = 0
	r.TaxableIncome = 0
	r.RegularTax = 0
	r.CapitalGainsTax = 0
	r.AMT = 0
	r.SelfEmploymentTax = 0
	r.NIIT = 0
	r.AdditionalMedicareTax = 0
	r.TaxBeforeCredits = 0
	r.NonrefundableCredits = 0
	r.RefundableCredits = 0
	r.PTCRepayment = 0
	r.EITC = 0
	r.ChildTaxCredit = 0
	r.TotalTax = 0
	r.TotalPayments = 0
	r.RefundOrOwed = 0
	r.EffectiveRate = decimal.Zero
	r.MarginalRate = decimal.Zero
}

// StateResult is the terminal output of one state engine run. It carries
// the consuming federal result by reference, read-only.
type StateResult struct {
	RunID   uuid.UUID      `json:"run_id" yaml:"run_id"`
	State   string         `json:"state" yaml:"state"`
	County  string         `json:"county,omitempty" yaml:"county,omitempty"`
	Federal *FederalResult `json:"-" yaml:"-"`

	StateAGI           money.Cents `json:"state_agi" yaml:"state_agi"`
	StateDeduction     money.Cents `json:"state_deduction" yaml:"state_deduction"`
	Exemptions         money.Cents `json:"exemptions" yaml:"exemptions"`
	StateTaxableIncome money.Cents `json:"state_taxable_income" yaml:"state_taxable_income"`
	StateTax           money.Cents `json:"state_tax" yaml:"state_tax"`
	LocalTax           money.Cents `json:"local_tax" yaml:"local_tax"`
	StateCredits       money.Cents `json:"state_credits" yaml:"state_credits"`
	TotalStateTax      money.Cents `json:"total_state_tax" yaml:"total_state_tax"`
	TotalPayments      money.Cents `json:"total_payments" yaml:"total_payments"`
	RefundOrOwed       money.Cents `json:"refund_or_owed" yaml:"refund_or_owed"`

	Steps       []CalculationStep `json:"steps,omitempty" yaml:"steps,omitempty"`
	Diagnostics Diagnostics       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// AddStep appends one calculation-trail entry.
func (r *StateResult) AddStep(description string, amount money.Cents, source, formula string) {
	r.Steps = append(r.Steps, CalculationStep{Description: description, Amount: amount, Source: source, Formula: formula})
}

// AddDiagnostic appends a diagnostic.
func (r *StateResult) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}
