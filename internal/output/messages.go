package output

import (
	"fmt"

	"github.com/piechiang/taxengine/internal/domain"
)

// diagnosticText maps each diagnostic code to its English template.
// Rendering lives here, not in the engine, so message wording (or a
// localized table) can change without touching calculation logic.
var diagnosticText = map[domain.DiagCode]string{
	domain.CodeMissingField:     "a required field is missing",
	domain.CodeInvalidValue:     "field has an invalid value",
	domain.CodeNegativeValue:    "field must not be negative",
	domain.CodeMissingSpouse:    "married filing jointly requires a spouse record",
	domain.CodeInvalidRuleSet:   "no usable rule set was supplied for the requested year",
	domain.CodeUnknownState:     "no rule set is registered for the requested state",
	domain.CodeUnknownCounty:    "county is not present in the state's local rate table",
	domain.CodeInternalError:    "an internal error interrupted the calculation",
	domain.CodeDualEducationUse: "a student cannot claim both education credits in one year",

	domain.CodeSALTCapApplied:        "state and local tax deduction was limited by the SALT cap",
	domain.CodeMedicalFloorApplied:   "medical expenses were reduced by the AGI floor",
	domain.CodeAdjustmentCapped:      "an above-the-line adjustment exceeded its annual cap",
	domain.CodeItemizedBelowStandard: "itemized deduction was forced although the standard deduction is larger",
	domain.CodeAMTApplied:            "alternative minimum tax exceeds the regular tax",
	domain.CodeSSWageBaseCapped:      "Social Security portion of SE tax was limited by the wage base",
	domain.CodePhaseOutApplied:       "a phase-out reduced this credit",
	domain.CodeCreditLimited:         "a nonrefundable credit exceeded the remaining tax liability",
	domain.CodeEITCInvestmentIncome:  "investment income above the statutory ceiling disqualifies the EITC",
	domain.CodePTCRepayment:          "advance premium tax credit payments exceeded the allowed credit",
	domain.CodeNoIncomeTaxState:      "this state levies no personal income tax",
	domain.CodeLargeRefund:           "refund is unusually large; withholding may be set too high",
	domain.CodeLargeBalanceDue:       "balance due is unusually large; withholding may be set too low",
	domain.CodeCapitalLossLimited:    "net capital loss was limited to the annual deduction cap",
}

// RenderDiagnostic produces the user-facing message for one diagnostic.
func RenderDiagnostic(d domain.Diagnostic) string {
	text, ok := diagnosticText[d.Code]
	if !ok {
		text = string(d.Code)
	}
	if d.Field != "" {
		if msg := d.Context["message"]; msg != "" {
			return fmt.Sprintf("%s: %s", d.Field, msg)
		}
		return fmt.Sprintf("%s: %s", d.Field, text)
	}
	return text
}
