package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/pkg/money"
)

// Unbounded marks the top bracket's max.
const Unbounded money.Cents = math.MaxInt64

// TaxBracket is one progressive-rate band. Max == 0 in a loaded rule file
// means unbounded and is normalized to Unbounded before use.
type TaxBracket struct {
	Min  money.Cents     `yaml:"min" json:"min"`
	Max  money.Cents     `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// FilingSchedules holds one bracket schedule per filing status.
type FilingSchedules struct {
	Single                  []TaxBracket `yaml:"single" json:"single"`
	MarriedFilingJointly    []TaxBracket `yaml:"married_filing_jointly" json:"married_filing_jointly"`
	MarriedFilingSeparately []TaxBracket `yaml:"married_filing_separately" json:"married_filing_separately"`
	HeadOfHousehold         []TaxBracket `yaml:"head_of_household" json:"head_of_household"`
}

// ForStatus returns the schedule for a filing status.
func (fs FilingSchedules) ForStatus(status FilingStatus) []TaxBracket {
	switch status {
	case MarriedFilingJointly:
		return fs.MarriedFilingJointly
	case MarriedFilingSeparately:
		return fs.MarriedFilingSeparately
	case HeadOfHousehold:
		return fs.HeadOfHousehold
	default:
		return fs.Single
	}
}

// StatusAmount is a per-filing-status monetary constant.
type StatusAmount struct {
	Single                  money.Cents `yaml:"single" json:"single"`
	MarriedFilingJointly    money.Cents `yaml:"married_filing_jointly" json:"married_filing_jointly"`
	MarriedFilingSeparately money.Cents `yaml:"married_filing_separately" json:"married_filing_separately"`
	HeadOfHousehold         money.Cents `yaml:"head_of_household" json:"head_of_household"`
}

// ForStatus returns the amount for a filing status.
func (sa StatusAmount) ForStatus(status FilingStatus) money.Cents {
	switch status {
	case MarriedFilingJointly:
		return sa.MarriedFilingJointly
	case MarriedFilingSeparately:
		return sa.MarriedFilingSeparately
	case HeadOfHousehold:
		return sa.HeadOfHousehold
	default:
		return sa.Single
	}
}

// RuleSetMetadata records provenance for a published rule bundle.
type RuleSetMetadata struct {
	Source        string `yaml:"source" json:"source"`
	EffectiveFrom string `yaml:"effective_from" json:"effective_from"`
	ExpiresAfter  string `yaml:"expires_after" json:"expires_after"`
	LastUpdated   string `yaml:"last_updated" json:"last_updated"`
}

// CapitalGainsRules is the preferential-rate tier schedule. The tiers
// stack on top of ordinary income rather than starting from zero.
type CapitalGainsRules struct {
	ZeroRateMax    StatusAmount    `yaml:"zero_rate_max" json:"zero_rate_max"`
	FifteenRateMax StatusAmount    `yaml:"fifteen_rate_max" json:"fifteen_rate_max"`
	MidRate        decimal.Decimal `yaml:"mid_rate" json:"mid_rate"`
	TopRate        decimal.Decimal `yaml:"top_rate" json:"top_rate"`
	// CapitalLossLimit caps the net loss deductible against other income.
	CapitalLossLimit StatusAmount `yaml:"capital_loss_limit" json:"capital_loss_limit"`
}

// AMTRules parameterizes the alternative minimum tax.
type AMTRules struct {
	Exemption         StatusAmount    `yaml:"exemption" json:"exemption"`
	PhaseOutStart     StatusAmount    `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutRate      decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
	LowRate           decimal.Decimal `yaml:"low_rate" json:"low_rate"`
	HighRate          decimal.Decimal `yaml:"high_rate" json:"high_rate"`
	HighRateThreshold money.Cents     `yaml:"high_rate_threshold" json:"high_rate_threshold"`
}

// SETaxRules parameterizes self-employment tax.
type SETaxRules struct {
	NetEarningsFactor  decimal.Decimal `yaml:"net_earnings_factor" json:"net_earnings_factor"`
	SocialSecurityRate decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	MedicareRate       decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
	WageBase           money.Cents     `yaml:"wage_base" json:"wage_base"`
}

// SurtaxRules parameterizes a flat surtax above a filing-status threshold
// (additional Medicare tax, NIIT).
type SurtaxRules struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Threshold StatusAmount    `yaml:"threshold" json:"threshold"`
}

// SocialSecurityRules gates benefit taxability on provisional income.
// InclusionRate is a documented flat-85% placeholder, not the full
// provisional-income worksheet.
type SocialSecurityRules struct {
	BaseThreshold StatusAmount    `yaml:"base_threshold" json:"base_threshold"`
	InclusionRate decimal.Decimal `yaml:"inclusion_rate" json:"inclusion_rate"`
}

// AdjustmentCaps are the per-field ceilings on above-the-line adjustments.
type AdjustmentCaps struct {
	EducatorExpensesMax    money.Cents `yaml:"educator_expenses_max" json:"educator_expenses_max"`
	HSAMax                 money.Cents `yaml:"hsa_max" json:"hsa_max"`
	IRAMax                 money.Cents `yaml:"ira_max" json:"ira_max"`
	StudentLoanInterestMax money.Cents `yaml:"student_loan_interest_max" json:"student_loan_interest_max"`
}

// DeductionRules parameterizes standard and itemized deductions.
type DeductionRules struct {
	Standard        StatusAmount    `yaml:"standard" json:"standard"`
	AdditionalAge65 StatusAmount    `yaml:"additional_age_65" json:"additional_age_65"`
	AdditionalBlind StatusAmount    `yaml:"additional_blind" json:"additional_blind"`
	SALTCap         money.Cents     `yaml:"salt_cap" json:"salt_cap"`
	MedicalAGIFloor decimal.Decimal `yaml:"medical_agi_floor" json:"medical_agi_floor"`
	QBIRate         decimal.Decimal `yaml:"qbi_rate" json:"qbi_rate"`
}

// CTCRules parameterizes the child tax credit and its refundable portion.
type CTCRules struct {
	PerChild          money.Cents     `yaml:"per_child" json:"per_child"`
	OtherDependent    money.Cents     `yaml:"other_dependent" json:"other_dependent"`
	ChildAgeLimit     int             `yaml:"child_age_limit" json:"child_age_limit"`
	PhaseOutThreshold StatusAmount    `yaml:"phase_out_threshold" json:"phase_out_threshold"`
	PhaseOutPerStep   money.Cents     `yaml:"phase_out_per_step" json:"phase_out_per_step"`
	PhaseOutStep      money.Cents     `yaml:"phase_out_step" json:"phase_out_step"`
	RefundableMax     money.Cents     `yaml:"refundable_max" json:"refundable_max"`
	EarnedIncomeFloor money.Cents     `yaml:"earned_income_floor" json:"earned_income_floor"`
	RefundableRate    decimal.Decimal `yaml:"refundable_rate" json:"refundable_rate"`
}

// EITCParams is the EITC row for one qualifying-children count.
type EITCParams struct {
	MaxCredit     money.Cents     `yaml:"max_credit" json:"max_credit"`
	PhaseInRate   decimal.Decimal `yaml:"phase_in_rate" json:"phase_in_rate"`
	PhaseOutRate  decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
	PhaseOutStart StatusAmount    `yaml:"phase_out_start" json:"phase_out_start"`
}

// EITCRules is the earned income tax credit table. ByChildren is indexed
// by qualifying-children count, capped at the last row.
type EITCRules struct {
	InvestmentIncomeLimit money.Cents  `yaml:"investment_income_limit" json:"investment_income_limit"`
	ChildAgeLimit         int          `yaml:"child_age_limit" json:"child_age_limit"`
	ByChildren            []EITCParams `yaml:"by_children" json:"by_children"`
}

// CDCCRules parameterizes the child and dependent care credit.
type CDCCRules struct {
	ExpenseCapOne     money.Cents     `yaml:"expense_cap_one" json:"expense_cap_one"`
	ExpenseCapTwoPlus money.Cents     `yaml:"expense_cap_two_plus" json:"expense_cap_two_plus"`
	MaxRate           decimal.Decimal `yaml:"max_rate" json:"max_rate"`
	MinRate           decimal.Decimal `yaml:"min_rate" json:"min_rate"`
	RateStep          decimal.Decimal `yaml:"rate_step" json:"rate_step"`
	AGIStart          money.Cents     `yaml:"agi_start" json:"agi_start"`
	AGIStep           money.Cents     `yaml:"agi_step" json:"agi_step"`
	// DeemedMonthlyIncome substitutes for a student/disabled spouse's
	// earned income, per qualifying-person count.
	DeemedMonthlyIncomeOne     money.Cents `yaml:"deemed_monthly_income_one" json:"deemed_monthly_income_one"`
	DeemedMonthlyIncomeTwoPlus money.Cents `yaml:"deemed_monthly_income_two_plus" json:"deemed_monthly_income_two_plus"`
}

// EducationCreditRules parameterizes one education credit.
type EducationCreditRules struct {
	TierOneMax      money.Cents     `yaml:"tier_one_max" json:"tier_one_max"`
	TierOneRate     decimal.Decimal `yaml:"tier_one_rate" json:"tier_one_rate"`
	TierTwoMax      money.Cents     `yaml:"tier_two_max" json:"tier_two_max"`
	TierTwoRate     decimal.Decimal `yaml:"tier_two_rate" json:"tier_two_rate"`
	PhaseOutStart   StatusAmount    `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutEnd     StatusAmount    `yaml:"phase_out_end" json:"phase_out_end"`
	RefundableShare decimal.Decimal `yaml:"refundable_share" json:"refundable_share"`
}

// EducationRules bundles the two mutually exclusive education credits.
type EducationRules struct {
	AOTC EducationCreditRules `yaml:"aotc" json:"aotc"`
	LLC  EducationCreditRules `yaml:"llc" json:"llc"`
}

// SaversTier is one AGI band of the retirement savings credit.
type SaversTier struct {
	AGIMax StatusAmount    `yaml:"agi_max" json:"agi_max"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
}

// SaversRules parameterizes the retirement savings contributions credit.
type SaversRules struct {
	ContributionCap money.Cents  `yaml:"contribution_cap" json:"contribution_cap"`
	Tiers           []SaversTier `yaml:"tiers" json:"tiers"`
}

// PTCRules parameterizes premium tax credit reconciliation. The flat
// contribution rate is a simplification of the sliding FPL scale.
type PTCRules struct {
	ContributionRate decimal.Decimal `yaml:"contribution_rate" json:"contribution_rate"`
}

// RuleSet is one year's immutable federal constant bundle. Rule sets are
// never mutated after registration and may be shared across parallel
// calculations without locking.
type RuleSet struct {
	Year     int             `yaml:"year" json:"year"`
	ID       string          `yaml:"id" json:"id"`
	Metadata RuleSetMetadata `yaml:"metadata" json:"metadata"`

	Brackets           FilingSchedules     `yaml:"brackets" json:"brackets"`
	Deductions         DeductionRules      `yaml:"deductions" json:"deductions"`
	CapitalGains       CapitalGainsRules   `yaml:"capital_gains" json:"capital_gains"`
	AMT                AMTRules            `yaml:"amt" json:"amt"`
	SelfEmployment     SETaxRules          `yaml:"self_employment" json:"self_employment"`
	AdditionalMedicare SurtaxRules         `yaml:"additional_medicare" json:"additional_medicare"`
	NIIT               SurtaxRules         `yaml:"niit" json:"niit"`
	SocialSecurity     SocialSecurityRules `yaml:"social_security" json:"social_security"`
	AdjustmentCaps     AdjustmentCaps      `yaml:"adjustment_caps" json:"adjustment_caps"`

	CTC        CTCRules       `yaml:"ctc" json:"ctc"`
	EITC       EITCRules      `yaml:"eitc" json:"eitc"`
	ChildCare  CDCCRules      `yaml:"child_care" json:"child_care"`
	Education  EducationRules `yaml:"education" json:"education"`
	Savers     SaversRules    `yaml:"savers" json:"savers"`
	PremiumTax PTCRules       `yaml:"premium_tax" json:"premium_tax"`
}

// StateRuleSet is one year's constant bundle for a single state.
type StateRuleSet struct {
	Year     int             `yaml:"year" json:"year"`
	Code     string          `yaml:"code" json:"code"`
	Name     string          `yaml:"name" json:"name"`
	Metadata RuleSetMetadata `yaml:"metadata" json:"metadata"`

	NoIncomeTax bool `yaml:"no_income_tax" json:"no_income_tax"`
	// FlatRate applies when no bracket schedule is given.
	FlatRate           decimal.Decimal `yaml:"flat_rate" json:"flat_rate"`
	Brackets           FilingSchedules `yaml:"brackets" json:"brackets"`
	StandardDeduction  StatusAmount    `yaml:"standard_deduction" json:"standard_deduction"`
	PersonalExemption  money.Cents     `yaml:"personal_exemption" json:"personal_exemption"`
	DependentExemption money.Cents     `yaml:"dependent_exemption" json:"dependent_exemption"`
	// RetirementExcluded excludes retirement distributions and Social
	// Security from the state base (Pennsylvania-style).
	RetirementExcluded bool `yaml:"retirement_excluded" json:"retirement_excluded"`
	// EITCPercent and CTCPercent define state credits as a fixed share of
	// the corresponding federal credit.
	EITCPercent decimal.Decimal `yaml:"eitc_percent" json:"eitc_percent"`
	CTCPercent  decimal.Decimal `yaml:"ctc_percent" json:"ctc_percent"`
	// LocalRates is the county/jurisdiction surtax lookup on state
	// taxable income.
	LocalRates map[string]decimal.Decimal `yaml:"local_rates" json:"local_rates"`
}

// NormalizeSchedule replaces a zero Max on the last bracket with Unbounded.
func NormalizeSchedule(brackets []TaxBracket) []TaxBracket {
	if n := len(brackets); n > 0 && brackets[n-1].Max == 0 {
		brackets[n-1].Max = Unbounded
	}
	return brackets
}

// ValidateSchedule checks ordering, contiguity and the unbounded top
// bracket required of every schedule.
func ValidateSchedule(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("bracket schedule is empty")
	}
	if brackets[0].Min != 0 {
		return fmt.Errorf("first bracket must start at 0, got %d", brackets[0].Min)
	}
	for i, b := range brackets {
		if b.Max <= b.Min {
			return fmt.Errorf("bracket %d: max %d not greater than min %d", i, b.Max, b.Min)
		}
		if b.Rate.IsNegative() {
			return fmt.Errorf("bracket %d: negative rate", i)
		}
		if i > 0 && b.Min != brackets[i-1].Max {
			return fmt.Errorf("bracket %d: min %d does not continue previous max %d", i, b.Min, brackets[i-1].Max)
		}
	}
	if brackets[len(brackets)-1].Max != Unbounded {
		return fmt.Errorf("final bracket must be unbounded")
	}
	return nil
}
