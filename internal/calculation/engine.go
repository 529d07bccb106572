package calculation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/piechiang/taxengine/internal/config"
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// Engine runs federal and state calculations. It holds no per-run state;
// a single Engine is safe for concurrent use as long as each call gets
// its own input and result objects and rule sets are never mutated after
// registration.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// pipeline carries the intermediates of one federal run between phases.
// Phases run strictly in order and never revisit an earlier phase.
type pipeline struct {
	e   *Engine
	in  *domain.TaxpayerInput
	rs  *domain.RuleSet
	res *domain.FederalResult

	netCapitalGains money.Cents // after the capital-loss limit
	preferential    money.Cents // qualified dividends + net long-term gains
	taxableSS       money.Cents
	seNetEarnings   money.Cents
	seDeduction     money.Cents
}

// ComputeFederal is the single entry point of the federal pipeline. It
// never returns an error and never panics past its boundary: malformed
// input yields a zeroed result with blocking diagnostics, and any
// internal failure is converted into a single internal_error diagnostic
// so batch callers can continue past one bad record.
func (e *Engine) ComputeFederal(input *domain.TaxpayerInput, rs *domain.RuleSet) (result *domain.FederalResult) {
	result = &domain.FederalResult{
		RunID:        uuid.New(),
		Year:         input.Year,
		FilingStatus: input.FilingStatus,
	}

	defer func() {
		if r := recover(); r != nil {
			e.Logger.Errorf("federal pipeline panic: %v", r)
			result.Zero()
			result.AddDiagnostic(domain.Diagnostic{
				Code:     domain.CodeInternalError,
				Severity: domain.SeverityError,
				Category: domain.CategoryCalculation,
				Context:  map[string]string{"cause": fmt.Sprintf("%v", r)},
			})
		}
	}()

	if fieldErrs := config.Validate(input); len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			result.AddDiagnostic(domain.Diagnostic{
				Code:     domain.CodeInvalidValue,
				Severity: domain.SeverityError,
				Category: domain.CategoryInput,
				Phase:    domain.PhaseValidation,
				Field:    fe.Field,
				Context:  map[string]string{"message": fe.Message},
			})
		}
		result.Zero()
		return result
	}
	if rs == nil {
		result.AddDiagnostic(domain.Diagnostic{
			Code:     domain.CodeInvalidRuleSet,
			Severity: domain.SeverityError,
			Category: domain.CategoryInput,
			Phase:    domain.PhaseValidation,
		})
		result.Zero()
		return result
	}

	p := &pipeline{e: e, in: input, rs: rs, res: result}

	p.totalIncome()         // phase 1
	p.adjustments()         // phase 2 (consumes the SE-tax estimate)
	p.deductions()          // phases 3-5
	p.regularTax()          // phase 6
	p.alternativeMinimum()  // phase 7
	p.additionalTaxes()     // phase 8
	p.sumTaxBeforeCredits() // phase 9
	p.credits()             // phases 10-11
	p.settle()              // phases 12-13

	return result
}

// sumTaxBeforeCredits is phase 9: the winning regular/AMT path plus the
// additional taxes.
func (p *pipeline) sumTaxBeforeCredits() {
	r := p.res
	r.TaxBeforeCredits = r.RegularTax + r.CapitalGainsTax + r.AMT +
		r.SelfEmploymentTax + r.NIIT + r.AdditionalMedicareTax
	r.AddStep("Tax before credits", r.TaxBeforeCredits, "Form 1040 line 22", "")
}

// settle is phases 12-13: payments, settlement and summary rates.
func (p *pipeline) settle() {
	r := p.res
	pay := p.in.Payments
	r.TotalPayments = pay.FederalWithholding + pay.EstimatedPayments + pay.Other + r.RefundableCredits
	r.AddStep("Total payments", r.TotalPayments, "Form 1040 line 33", "withholding + estimated + other + refundable credits")

	r.RefundOrOwed = r.TotalPayments - r.TotalTax
	r.AddStep("Refund or amount owed", r.RefundOrOwed, "Form 1040 lines 34/37", "payments - total tax")

	if r.AGI > 0 {
		r.EffectiveRate = money.Ratio(r.TotalTax, r.AGI).Round(4)
	}
	r.MarginalRate = MarginalRate(r.TaxableIncome, p.rs.Brackets.ForStatus(p.in.FilingStatus))

	const settlementNotice = money.Cents(10000 * 100)
	if r.RefundOrOwed > settlementNotice {
		p.warn(domain.CodeLargeRefund, domain.PhaseSettlement, domain.CategoryFiling, map[string]string{
			"amount": r.RefundOrOwed.String(),
		})
	} else if r.RefundOrOwed < -settlementNotice {
		p.warn(domain.CodeLargeBalanceDue, domain.PhaseSettlement, domain.CategoryFiling, map[string]string{
			"amount": (-r.RefundOrOwed).String(),
		})
	}

	p.e.Logger.Debugf("run %s: AGI=%s taxable=%s tax=%s settlement=%s",
		r.RunID, r.AGI, r.TaxableIncome, r.TotalTax, r.RefundOrOwed)
}

// warn attaches a non-blocking diagnostic to the current result.
func (p *pipeline) warn(code domain.DiagCode, phase domain.Phase, cat domain.Category, ctx map[string]string) {
	p.res.AddDiagnostic(domain.Diagnostic{
		Code:     code,
		Severity: domain.SeverityWarning,
		Category: cat,
		Phase:    phase,
		Context:  ctx,
	})
}
