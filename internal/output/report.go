package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// ReportGenerator renders calculation results in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes a federal result (and optional state result) to w in
// the requested format: text, json or csv.
func (rg *ReportGenerator) Generate(w io.Writer, fed *domain.FederalResult, state *domain.StateResult, format string) error {
	switch format {
	case "text", "":
		return rg.writeText(w, fed, state)
	case "json":
		return rg.writeJSON(w, fed, state)
	case "csv":
		return rg.writeCSV(w, fed, state)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (rg *ReportGenerator) writeText(w io.Writer, fed *domain.FederalResult, state *domain.StateResult) error {
	line := strings.Repeat("=", 72)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "FEDERAL INCOME TAX CALCULATION - %d (%s)\n", fed.Year, fed.FilingStatus)
	fmt.Fprintf(w, "run %s\n", fed.RunID)
	fmt.Fprintln(w, line)

	if fed.Diagnostics.HasErrors() {
		fmt.Fprintln(w, "\nCALCULATION BLOCKED - fix these problems and retry:")
		for _, d := range fed.Diagnostics.Errors() {
			fmt.Fprintf(w, "  ERROR  %s\n", RenderDiagnostic(d))
		}
		return nil
	}

	row := func(label string, amount money.Cents) {
		fmt.Fprintf(w, "  %-44s %14s\n", label, amount)
	}
	row("Total income", fed.TotalIncome)
	row("Adjustments", fed.TotalAdjustments)
	row("Adjusted gross income", fed.AGI)
	row(fmt.Sprintf("Deduction used (%s)", fed.DeductionType), fed.DeductionUsed)
	if fed.QBIDeduction > 0 {
		row("QBI deduction", fed.QBIDeduction)
	}
	row("Taxable income", fed.TaxableIncome)
	fmt.Fprintln(w)
	row("Regular tax", fed.RegularTax)
	if fed.CapitalGainsTax > 0 {
		row("Capital gains / qualified dividend tax", fed.CapitalGainsTax)
	}
	if fed.AMT > 0 {
		row("Alternative minimum tax", fed.AMT)
	}
	if fed.SelfEmploymentTax > 0 {
		row("Self-employment tax", fed.SelfEmploymentTax)
	}
	if fed.NIIT > 0 {
		row("Net investment income tax", fed.NIIT)
	}
	if fed.AdditionalMedicareTax > 0 {
		row("Additional Medicare tax", fed.AdditionalMedicareTax)
	}
	row("Tax before credits", fed.TaxBeforeCredits)
	row("Nonrefundable credits", fed.NonrefundableCredits)
	row("Refundable credits", fed.RefundableCredits)
	row("Total tax", fed.TotalTax)
	row("Total payments", fed.TotalPayments)
	fmt.Fprintln(w)
	if fed.RefundOrOwed >= 0 {
		row("REFUND", fed.RefundOrOwed)
	} else {
		row("AMOUNT OWED", -fed.RefundOrOwed)
	}
	fmt.Fprintf(w, "  effective rate %s, marginal rate %s\n",
		fed.EffectiveRate.Mul(hundredPct).StringFixed(2)+"%",
		fed.MarginalRate.Mul(hundredPct).StringFixed(2)+"%")

	if warnings := fed.Diagnostics.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(w, "\nNOTES:")
		for _, d := range warnings {
			fmt.Fprintf(w, "  - %s\n", RenderDiagnostic(d))
		}
	}

	if state != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "STATE CALCULATION - %s\n", state.State)
		fmt.Fprintln(w, line)
		row("State AGI", state.StateAGI)
		row("State taxable income", state.StateTaxableIncome)
		row("State income tax", state.StateTax)
		if state.LocalTax > 0 {
			row("Local income tax", state.LocalTax)
		}
		if state.StateCredits > 0 {
			row("State credits", state.StateCredits)
		}
		row("Total state tax", state.TotalStateTax)
		if state.RefundOrOwed >= 0 {
			row("STATE REFUND", state.RefundOrOwed)
		} else {
			row("STATE AMOUNT OWED", -state.RefundOrOwed)
		}
		for _, d := range state.Diagnostics {
			fmt.Fprintf(w, "  - %s\n", RenderDiagnostic(d))
		}
	}
	return nil
}

// combinedResult is the JSON envelope for programmatic callers.
type combinedResult struct {
	Federal *domain.FederalResult `json:"federal"`
	State   *domain.StateResult   `json:"state,omitempty"`
}

func (rg *ReportGenerator) writeJSON(w io.Writer, fed *domain.FederalResult, state *domain.StateResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(combinedResult{Federal: fed, State: state})
}
