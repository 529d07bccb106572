package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/piechiang/taxengine/pkg/money"
)

func TestAgeAtYearEnd(t *testing.T) {
	tests := []struct {
		name     string
		birth    time.Time
		year     int
		expected int
	}{
		{"mid-year birthday", time.Date(1960, time.June, 15, 0, 0, 0, 0, time.UTC), 2025, 65},
		{"born on december 31", time.Date(1960, time.December, 31, 0, 0, 0, 0, time.UTC), 2025, 65},
		{"born january 1", time.Date(1961, time.January, 1, 0, 0, 0, 0, time.UTC), 2025, 64},
		{"infant", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 2025, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Person{BirthDate: tt.birth}
			assert.Equal(t, tt.expected, p.AgeAtYearEnd(tt.year))
		})
	}
}

func TestFilingStatus(t *testing.T) {
	assert.True(t, Single.Valid())
	assert.True(t, MarriedFilingJointly.Valid())
	assert.False(t, FilingStatus("widowed").Valid())

	assert.True(t, MarriedFilingSeparately.IsMarried())
	assert.False(t, HeadOfHousehold.IsMarried())
}

func TestEarnedIncome(t *testing.T) {
	in := &TaxpayerInput{Income: Income{
		Wages:              money.FromDollars(40000),
		ScheduleCNetProfit: -money.FromDollars(5000),
	}}
	// A business loss never reduces earned income below wages.
	assert.Equal(t, money.FromDollars(40000), in.EarnedIncome())

	in.Income.ScheduleCNetProfit = money.FromDollars(5000)
	assert.Equal(t, money.FromDollars(45000), in.EarnedIncome())
}

func TestQualifyingChildren(t *testing.T) {
	in := &TaxpayerInput{
		Year: 2025,
		Dependents: []Dependent{
			{Name: "a", BirthDate: time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC)},  // 15
			{Name: "b", BirthDate: time.Date(2008, time.May, 1, 0, 0, 0, 0, time.UTC)},  // 17
			{Name: "c", BirthDate: time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)},  // 5
		},
	}
	assert.Equal(t, 2, in.QualifyingChildren(17))
	assert.Equal(t, 3, in.QualifyingChildren(19))
	assert.Equal(t, 0, in.QualifyingChildren(0))
}
