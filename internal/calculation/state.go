package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// ComputeState runs one state engine over a finished federal result.
// State engines never recompute federal logic: they start from federal
// AGI, apply state additions/subtractions, state deduction/exemptions,
// flat or progressive bracket tax, percentage-of-federal credits, and a
// county local surcharge when the rule set defines one.
func (e *Engine) ComputeState(fed *domain.FederalResult, input *domain.TaxpayerInput, srs *domain.StateRuleSet) (result *domain.StateResult) {
	result = &domain.StateResult{
		RunID:   fed.RunID,
		Federal: fed,
	}
	if srs != nil {
		result.State = srs.Code
	}

	defer func() {
		if r := recover(); r != nil {
			e.Logger.Errorf("state pipeline panic: %v", r)
			*result = domain.StateResult{RunID: fed.RunID, State: result.State, Federal: fed}
			result.AddDiagnostic(domain.Diagnostic{
				Code:     domain.CodeInternalError,
				Severity: domain.SeverityError,
				Category: domain.CategoryCalculation,
				Phase:    domain.PhaseState,
			})
		}
	}()

	if srs == nil {
		result.AddDiagnostic(domain.Diagnostic{
			Code:     domain.CodeUnknownState,
			Severity: domain.SeverityError,
			Category: domain.CategoryInput,
			Phase:    domain.PhaseState,
		})
		return result
	}
	if fed.Diagnostics.HasErrors() {
		// A failed federal run cannot feed a state computation.
		result.AddDiagnostic(domain.Diagnostic{
			Code:     domain.CodeInvalidValue,
			Severity: domain.SeverityError,
			Category: domain.CategoryInput,
			Phase:    domain.PhaseState,
			Context:  map[string]string{"message": "federal result carries blocking errors"},
		})
		return result
	}

	var st domain.StateInput
	if input.State != nil {
		st = *input.State
	}
	result.County = st.County

	if srs.NoIncomeTax {
		result.AddDiagnostic(domain.Diagnostic{
			Code:     domain.CodeNoIncomeTaxState,
			Severity: domain.SeverityWarning,
			Category: domain.CategoryFiling,
			Phase:    domain.PhaseState,
			Context:  map[string]string{"state": srs.Code},
		})
		result.AddStep("State has no personal income tax", 0, srs.Metadata.Source, "")
		result.TotalPayments = st.Withholding + st.EstimatedPayments
		result.RefundOrOwed = result.TotalPayments
		return result
	}

	// State AGI: federal AGI plus state additions minus subtractions.
	agi := money.Max0(fed.AGI + st.Additions - st.Subtractions)
	if srs.RetirementExcluded {
		excluded := input.Income.RetirementDistributions + fed.TaxableSocialSecurity
		agi = money.Max0(agi - excluded)
		if excluded > 0 {
			result.AddStep("Retirement income excluded from state base", excluded, srs.Metadata.Source, "")
		}
	}
	result.StateAGI = agi
	result.AddStep("State adjusted gross income", agi, "", "federal AGI + additions - subtractions")

	// State deduction and exemptions.
	deduction := srs.StandardDeduction.ForStatus(input.FilingStatus)
	exemptions := srs.PersonalExemption
	if input.FilingStatus == domain.MarriedFilingJointly {
		exemptions += srs.PersonalExemption
	}
	exemptions += money.Cents(len(input.Dependents)) * srs.DependentExemption
	result.StateDeduction = deduction
	result.Exemptions = exemptions

	taxable := money.Max0(agi - deduction - exemptions)
	result.StateTaxableIncome = taxable
	result.AddStep("State taxable income", taxable, "", "state AGI - deduction - exemptions")

	// Bracket or flat-rate tax.
	if brackets := srs.Brackets.ForStatus(input.FilingStatus); len(brackets) > 0 {
		result.StateTax = TaxFromBrackets(taxable, brackets)
	} else if !srs.FlatRate.IsZero() {
		result.StateTax = money.Mul(taxable, srs.FlatRate)
	}
	result.AddStep("State income tax", result.StateTax, srs.Metadata.Source, "")

	// County/local surcharge on state taxable income.
	if len(srs.LocalRates) > 0 && st.County != "" {
		rate, ok := srs.LocalRates[st.County]
		if !ok {
			result.AddDiagnostic(domain.Diagnostic{
				Code:     domain.CodeUnknownCounty,
				Severity: domain.SeverityWarning,
				Category: domain.CategoryInput,
				Phase:    domain.PhaseState,
				Field:    "state_input.county",
				Context:  map[string]string{"county": st.County},
			})
		} else {
			result.LocalTax = money.Mul(taxable, rate)
			result.AddStep("Local income tax", result.LocalTax, "", st.County)
		}
	}

	// State credits as a share of the federal credits.
	var credits money.Cents
	if !srs.EITCPercent.IsZero() && fed.EITC > 0 {
		credits += money.Mul(fed.EITC, srs.EITCPercent)
	}
	if !srs.CTCPercent.IsZero() && fed.ChildTaxCredit > 0 {
		credits += money.Mul(fed.ChildTaxCredit, srs.CTCPercent)
	}
	result.StateCredits = credits
	if credits > 0 {
		result.AddStep("State credits", credits, "", "percentage of federal credits")
	}

	result.TotalStateTax = money.Max0(result.StateTax + result.LocalTax - credits)
	result.TotalPayments = st.Withholding + st.EstimatedPayments
	result.RefundOrOwed = result.TotalPayments - result.TotalStateTax
	result.AddStep("Total state tax", result.TotalStateTax, "", "state + local - credits, floored at 0")
	result.AddStep("State refund or amount owed", result.RefundOrOwed, "", "payments - total state tax")

	return result
}
