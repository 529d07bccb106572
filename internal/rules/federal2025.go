package rules

import (
	"github.com/shopspring/decimal"

	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/pkg/money"
)

// Federal2025 returns the built-in 2025 federal bundle (Rev. Proc. 2024-40
// amounts). Amounts are cents.
func Federal2025() *domain.RuleSet {
	d := money.FromDollars
	rate := decimal.NewFromFloat

	return &domain.RuleSet{
		Year: 2025,
		ID:   FederalRuleID,
		Metadata: domain.RuleSetMetadata{
			Source:        "IRS Rev. Proc. 2024-40",
			EffectiveFrom: "2025-01-01",
			ExpiresAfter:  "2025-12-31",
			LastUpdated:   "2024-10-22",
		},
		Brackets: domain.FilingSchedules{
			Single: []domain.TaxBracket{
				{Min: 0, Max: d(11925), Rate: rate(0.10)},
				{Min: d(11925), Max: d(48475), Rate: rate(0.12)},
				{Min: d(48475), Max: d(103350), Rate: rate(0.22)},
				{Min: d(103350), Max: d(197300), Rate: rate(0.24)},
				{Min: d(197300), Max: d(250525), Rate: rate(0.32)},
				{Min: d(250525), Max: d(626350), Rate: rate(0.35)},
				{Min: d(626350), Max: domain.Unbounded, Rate: rate(0.37)},
			},
			MarriedFilingJointly: []domain.TaxBracket{
				{Min: 0, Max: d(23850), Rate: rate(0.10)},
				{Min: d(23850), Max: d(96950), Rate: rate(0.12)},
				{Min: d(96950), Max: d(206700), Rate: rate(0.22)},
				{Min: d(206700), Max: d(394600), Rate: rate(0.24)},
				{Min: d(394600), Max: d(501050), Rate: rate(0.32)},
				{Min: d(501050), Max: d(751600), Rate: rate(0.35)},
				{Min: d(751600), Max: domain.Unbounded, Rate: rate(0.37)},
			},
			MarriedFilingSeparately: []domain.TaxBracket{
				{Min: 0, Max: d(11925), Rate: rate(0.10)},
				{Min: d(11925), Max: d(48475), Rate: rate(0.12)},
				{Min: d(48475), Max: d(103350), Rate: rate(0.22)},
				{Min: d(103350), Max: d(197300), Rate: rate(0.24)},
				{Min: d(197300), Max: d(250525), Rate: rate(0.32)},
				{Min: d(250525), Max: d(375800), Rate: rate(0.35)},
				{Min: d(375800), Max: domain.Unbounded, Rate: rate(0.37)},
			},
			HeadOfHousehold: []domain.TaxBracket{
				{Min: 0, Max: d(17000), Rate: rate(0.10)},
				{Min: d(17000), Max: d(64850), Rate: rate(0.12)},
				{Min: d(64850), Max: d(103350), Rate: rate(0.22)},
				{Min: d(103350), Max: d(197300), Rate: rate(0.24)},
				{Min: d(197300), Max: d(250500), Rate: rate(0.32)},
				{Min: d(250500), Max: d(626350), Rate: rate(0.35)},
				{Min: d(626350), Max: domain.Unbounded, Rate: rate(0.37)},
			},
		},
		Deductions: domain.DeductionRules{
			Standard: domain.StatusAmount{
				Single:                  d(15000),
				MarriedFilingJointly:    d(30000),
				MarriedFilingSeparately: d(15000),
				HeadOfHousehold:         d(22500),
			},
			AdditionalAge65: domain.StatusAmount{
				Single:                  d(2000),
				MarriedFilingJointly:    d(1600),
				MarriedFilingSeparately: d(1600),
				HeadOfHousehold:         d(2000),
			},
			AdditionalBlind: domain.StatusAmount{
				Single:                  d(2000),
				MarriedFilingJointly:    d(1600),
				MarriedFilingSeparately: d(1600),
				HeadOfHousehold:         d(2000),
			},
			SALTCap:         d(10000),
			MedicalAGIFloor: rate(0.075),
			QBIRate:         rate(0.20),
		},
		CapitalGains: domain.CapitalGainsRules{
			ZeroRateMax: domain.StatusAmount{
				Single:                  d(48350),
				MarriedFilingJointly:    d(96700),
				MarriedFilingSeparately: d(48350),
				HeadOfHousehold:         d(64750),
			},
			FifteenRateMax: domain.StatusAmount{
				Single:                  d(533400),
				MarriedFilingJointly:    d(600050),
				MarriedFilingSeparately: d(300000),
				HeadOfHousehold:         d(566700),
			},
			MidRate: rate(0.15),
			TopRate: rate(0.20),
			CapitalLossLimit: domain.StatusAmount{
				Single:                  d(3000),
				MarriedFilingJointly:    d(3000),
				MarriedFilingSeparately: d(1500),
				HeadOfHousehold:         d(3000),
			},
		},
		AMT: domain.AMTRules{
			Exemption: domain.StatusAmount{
				Single:                  d(88100),
				MarriedFilingJointly:    d(137000),
				MarriedFilingSeparately: d(68500),
				HeadOfHousehold:         d(88100),
			},
			PhaseOutStart: domain.StatusAmount{
				Single:                  d(626350),
				MarriedFilingJointly:    d(1252700),
				MarriedFilingSeparately: d(626350),
				HeadOfHousehold:         d(626350),
			},
			PhaseOutRate:      rate(0.25),
			LowRate:           rate(0.26),
			HighRate:          rate(0.28),
			HighRateThreshold: d(239100),
		},
		SelfEmployment: domain.SETaxRules{
			NetEarningsFactor:  rate(0.9235),
			SocialSecurityRate: rate(0.124),
			MedicareRate:       rate(0.029),
			WageBase:           d(176100),
		},
		AdditionalMedicare: domain.SurtaxRules{
			Rate: rate(0.009),
			Threshold: domain.StatusAmount{
				Single:                  d(200000),
				MarriedFilingJointly:    d(250000),
				MarriedFilingSeparately: d(125000),
				HeadOfHousehold:         d(200000),
			},
		},
		NIIT: domain.SurtaxRules{
			Rate: rate(0.038),
			Threshold: domain.StatusAmount{
				Single:                  d(200000),
				MarriedFilingJointly:    d(250000),
				MarriedFilingSeparately: d(125000),
				HeadOfHousehold:         d(200000),
			},
		},
		SocialSecurity: domain.SocialSecurityRules{
			BaseThreshold: domain.StatusAmount{
				Single:                  d(25000),
				MarriedFilingJointly:    d(32000),
				MarriedFilingSeparately: 0,
				HeadOfHousehold:         d(25000),
			},
			InclusionRate: rate(0.85),
		},
		AdjustmentCaps: domain.AdjustmentCaps{
			EducatorExpensesMax:    d(300),
			HSAMax:                 d(4300),
			IRAMax:                 d(7000),
			StudentLoanInterestMax: d(2500),
		},
		CTC: domain.CTCRules{
			PerChild:       d(2000),
			OtherDependent: d(500),
			ChildAgeLimit:  17,
			PhaseOutThreshold: domain.StatusAmount{
				Single:                  d(200000),
				MarriedFilingJointly:    d(400000),
				MarriedFilingSeparately: d(200000),
				HeadOfHousehold:         d(200000),
			},
			PhaseOutPerStep:   d(50),
			PhaseOutStep:      d(1000),
			RefundableMax:     d(1700),
			EarnedIncomeFloor: d(2500),
			RefundableRate:    rate(0.15),
		},
		EITC: domain.EITCRules{
			InvestmentIncomeLimit: d(11950),
			ChildAgeLimit:         19,
			ByChildren: []domain.EITCParams{
				{
					MaxCredit:    d(649),
					PhaseInRate:  rate(0.0765),
					PhaseOutRate: rate(0.0765),
					PhaseOutStart: domain.StatusAmount{
						Single:                  d(10620),
						MarriedFilingJointly:    d(17730),
						MarriedFilingSeparately: d(10620),
						HeadOfHousehold:         d(10620),
					},
				},
				{
					MaxCredit:    d(4328),
					PhaseInRate:  rate(0.34),
					PhaseOutRate: rate(0.1598),
					PhaseOutStart: domain.StatusAmount{
						Single:                  d(23350),
						MarriedFilingJointly:    d(30470),
						MarriedFilingSeparately: d(23350),
						HeadOfHousehold:         d(23350),
					},
				},
				{
					MaxCredit:    d(7152),
					PhaseInRate:  rate(0.40),
					PhaseOutRate: rate(0.2106),
					PhaseOutStart: domain.StatusAmount{
						Single:                  d(23350),
						MarriedFilingJointly:    d(30470),
						MarriedFilingSeparately: d(23350),
						HeadOfHousehold:         d(23350),
					},
				},
				{
					MaxCredit:    d(8046),
					PhaseInRate:  rate(0.45),
					PhaseOutRate: rate(0.2106),
					PhaseOutStart: domain.StatusAmount{
						Single:                  d(23350),
						MarriedFilingJointly:    d(30470),
						MarriedFilingSeparately: d(23350),
						HeadOfHousehold:         d(23350),
					},
				},
			},
		},
		ChildCare: domain.CDCCRules{
			ExpenseCapOne:              d(3000),
			ExpenseCapTwoPlus:          d(6000),
			MaxRate:                    rate(0.35),
			MinRate:                    rate(0.20),
			RateStep:                   rate(0.01),
			AGIStart:                   d(15000),
			AGIStep:                    d(2000),
			DeemedMonthlyIncomeOne:     d(250),
			DeemedMonthlyIncomeTwoPlus: d(500),
		},
		Education: domain.EducationRules{
			AOTC: domain.EducationCreditRules{
				TierOneMax:  d(2000),
				TierOneRate: rate(1.00),
				TierTwoMax:  d(2000),
				TierTwoRate: rate(0.25),
				PhaseOutStart: domain.StatusAmount{
					Single:                  d(80000),
					MarriedFilingJointly:    d(160000),
					MarriedFilingSeparately: d(80000),
					HeadOfHousehold:         d(80000),
				},
				PhaseOutEnd: domain.StatusAmount{
					Single:                  d(90000),
					MarriedFilingJointly:    d(180000),
					MarriedFilingSeparately: d(90000),
					HeadOfHousehold:         d(90000),
				},
				RefundableShare: rate(0.40),
			},
			LLC: domain.EducationCreditRules{
				TierOneMax:  d(10000),
				TierOneRate: rate(0.20),
				PhaseOutStart: domain.StatusAmount{
					Single:                  d(80000),
					MarriedFilingJointly:    d(160000),
					MarriedFilingSeparately: d(80000),
					HeadOfHousehold:         d(80000),
				},
				PhaseOutEnd: domain.StatusAmount{
					Single:                  d(90000),
					MarriedFilingJointly:    d(180000),
					MarriedFilingSeparately: d(90000),
					HeadOfHousehold:         d(90000),
				},
			},
		},
		Savers: domain.SaversRules{
			ContributionCap: d(2000),
			Tiers: []domain.SaversTier{
				{
					AGIMax: domain.StatusAmount{
						Single:                  d(23750),
						MarriedFilingJointly:    d(47500),
						MarriedFilingSeparately: d(23750),
						HeadOfHousehold:         d(35625),
					},
					Rate: rate(0.50),
				},
				{
					AGIMax: domain.StatusAmount{
						Single:                  d(25500),
						MarriedFilingJointly:    d(51000),
						MarriedFilingSeparately: d(25500),
						HeadOfHousehold:         d(38250),
					},
					Rate: rate(0.20),
				},
				{
					AGIMax: domain.StatusAmount{
						Single:                  d(39500),
						MarriedFilingJointly:    d(79000),
						MarriedFilingSeparately: d(39500),
						HeadOfHousehold:         d(59250),
					},
					Rate: rate(0.10),
				},
			},
		},
		PremiumTax: domain.PTCRules{
			ContributionRate: rate(0.085),
		},
	}
}
