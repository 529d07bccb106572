package domain

// Severity classifies a diagnostic. Errors block finalization; warnings
// annotate an otherwise valid result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups diagnostics for consumer-facing display.
type Category string

const (
	CategoryInput       Category = "input"
	CategoryCalculation Category = "calculation"
	CategoryCredit      Category = "credit"
	CategoryFiling      Category = "filing_suggestion"
)

// Phase identifies the calculation phase that produced a diagnostic.
type Phase string

const (
	PhaseValidation    Phase = "validation"
	PhaseIncome        Phase = "income"
	PhaseAdjustments   Phase = "adjustments"
	PhaseDeductions    Phase = "deductions"
	PhaseTaxableIncome Phase = "taxable_income"
	PhaseRegularTax    Phase = "regular_tax"
	PhaseAMT           Phase = "amt"
	PhaseAdditionalTax Phase = "additional_tax"
	PhaseCredits       Phase = "credits"
	PhasePayments      Phase = "payments"
	PhaseSettlement    Phase = "settlement"
	PhaseState         Phase = "state"
)

// DiagCode is a closed enumeration of diagnostic kinds. Message text is a
// presentation concern and lives in internal/output, keyed by code.
type DiagCode string

const (
	// Input validation (blocking).
	CodeMissingField     DiagCode = "missing_field"
	CodeInvalidValue     DiagCode = "invalid_value"
	CodeNegativeValue    DiagCode = "negative_value"
	CodeMissingSpouse    DiagCode = "missing_spouse"
	CodeInvalidRuleSet   DiagCode = "invalid_rule_set"
	CodeUnknownState     DiagCode = "unknown_state"
	CodeUnknownCounty    DiagCode = "unknown_county"
	CodeInternalError    DiagCode = "internal_error"
	CodeDualEducationUse DiagCode = "dual_education_credit"

	// Calculation warnings (non-blocking).
	CodeSALTCapApplied        DiagCode = "salt_cap_applied"
	CodeMedicalFloorApplied   DiagCode = "medical_floor_applied"
	CodeAdjustmentCapped      DiagCode = "adjustment_capped"
	CodeItemizedBelowStandard DiagCode = "itemized_below_standard"
	CodeAMTApplied            DiagCode = "amt_applied"
	CodeSSWageBaseCapped      DiagCode = "ss_wage_base_capped"
	CodePhaseOutApplied       DiagCode = "phase_out_applied"
	CodeCreditLimited         DiagCode = "credit_limited_by_tax"
	CodeEITCInvestmentIncome  DiagCode = "eitc_investment_income"
	CodePTCRepayment          DiagCode = "ptc_repayment"
	CodeNoIncomeTaxState      DiagCode = "no_income_tax_state"
	CodeLargeRefund           DiagCode = "large_refund"
	CodeLargeBalanceDue       DiagCode = "large_balance_due"
	CodeCapitalLossLimited    DiagCode = "capital_loss_limited"
)

// Diagnostic is a structured warning or error attached to a calculation
// phase. Context carries the code-specific payload (amounts, field names)
// so rendering can be localized without touching calculation logic.
type Diagnostic struct {
	Code     DiagCode          `json:"code" yaml:"code"`
	Severity Severity          `json:"severity" yaml:"severity"`
	Category Category          `json:"category" yaml:"category"`
	Phase    Phase             `json:"phase,omitempty" yaml:"phase,omitempty"`
	Field    string            `json:"field,omitempty" yaml:"field,omitempty"`
	Context  map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Diagnostics is an append-only collection with query helpers.
type Diagnostics []Diagnostic

// Errors returns the blocking diagnostics.
func (ds Diagnostics) Errors() Diagnostics { return ds.BySeverity(SeverityError) }

// Warnings returns the non-blocking diagnostics.
func (ds Diagnostics) Warnings() Diagnostics { return ds.BySeverity(SeverityWarning) }

// BySeverity filters by severity.
func (ds Diagnostics) BySeverity(s Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// ByPhase filters by calculation phase.
func (ds Diagnostics) ByPhase(p Phase) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Phase == p {
			out = append(out, d)
		}
	}
	return out
}

// ByCategory filters by category.
func (ds Diagnostics) ByCategory(c Category) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any blocking diagnostic is present.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FieldError is the validation-layer view of a blocking diagnostic.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}
