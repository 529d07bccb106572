package calculation

import (
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// TaxableSocialSecurity returns the includable portion of Social Security
// benefits.
//
// This is a documented simplification of the IRS provisional-income
// worksheet: provisional income (other income + tax-exempt interest +
// half of benefits) above the filing-status base threshold includes a
// flat 85% of benefits; at or below it, none. Golden-test expectations
// depend on this placeholder; replacing it with the full worksheet needs
// new oracles first.
func TaxableSocialSecurity(benefits, otherIncome, taxExemptInterest money.Cents, status domain.FilingStatus, rules domain.SocialSecurityRules) money.Cents {
	if benefits <= 0 {
		return 0
	}
	provisional := otherIncome + taxExemptInterest + benefits/2
	if provisional <= rules.BaseThreshold.ForStatus(status) {
		return 0
	}
	return money.Mul(benefits, rules.InclusionRate)
}
