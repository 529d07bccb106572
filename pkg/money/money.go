// Package money provides integer-cent monetary arithmetic.
//
// Every monetary value in the engine is a Cents count. Rates (tax rates,
// phase-out percentages) are decimal.Decimal and are only ever applied to
// money through Mul or MulTrunc, which fix the rounding direction at the
// call site. Direct float arithmetic on money is a correctness bug.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in minor currency units (cents).
// Amounts may be negative only where a field is documented as net-of-loss.
type Cents int64

var hundred = decimal.NewFromInt(100)

// FromDollars converts a whole-dollar amount to cents.
func FromDollars(dollars int64) Cents {
	return Cents(dollars * 100)
}

// FromDecimalDollars converts a decimal dollar amount to cents,
// rounding half-up to the nearest cent.
func FromDecimalDollars(d decimal.Decimal) Cents {
	return Cents(d.Mul(hundred).Round(0).IntPart())
}

// Dollars returns the amount as decimal dollars.
func (c Cents) Dollars() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as a dollar string, e.g. "$1234.56".
func (c Cents) String() string {
	if c < 0 {
		return fmt.Sprintf("-$%s", (-c).Dollars().StringFixed(2))
	}
	return fmt.Sprintf("$%s", c.Dollars().StringFixed(2))
}

// Add returns a + b.
func Add(a, b Cents) Cents {
	return a + b
}

// Sub returns a - b with no floor; the result may be negative.
func Sub(a, b Cents) Cents {
	return a - b
}

// SubFloor returns a - b, never less than floor.
func SubFloor(a, b, floor Cents) Cents {
	r := a - b
	if r < floor {
		return floor
	}
	return r
}

// Max0 clips a negative amount to zero.
func Max0(a Cents) Cents {
	if a < 0 {
		return 0
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

// Mul applies a rate to an amount, rounding half-up to the nearest cent.
// This is the default rounding for IRS worksheet steps.
func Mul(amount Cents, rate decimal.Decimal) Cents {
	return Cents(decimal.NewFromInt(int64(amount)).Mul(rate).Round(0).IntPart())
}

// MulTrunc applies a rate to an amount, truncating toward zero.
// Used only where a specific form requires truncation.
func MulTrunc(amount Cents, rate decimal.Decimal) Cents {
	return Cents(decimal.NewFromInt(int64(amount)).Mul(rate).Truncate(0).IntPart())
}

// CeilDiv returns the number of whole steps covering amount, rounding any
// fraction up. CeilDiv(1, 100000) == 1; CeilDiv(0, n) == 0. Both arguments
// must be non-negative and step must be positive.
func CeilDiv(amount, step Cents) int64 {
	if amount <= 0 {
		return 0
	}
	return (int64(amount) + int64(step) - 1) / int64(step)
}

// Ratio returns amount/total as a decimal, or zero when total is zero.
func Ratio(amount, total Cents) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(amount)).Div(decimal.NewFromInt(int64(total)))
}
