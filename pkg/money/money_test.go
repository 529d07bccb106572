package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromDollars(t *testing.T) {
	assert.Equal(t, Cents(5000000), FromDollars(50000), "Should convert whole dollars to cents")
	assert.Equal(t, Cents(0), FromDollars(0))
}

func TestFromDecimalDollars(t *testing.T) {
	assert.Equal(t, Cents(12346), FromDecimalDollars(decimal.NewFromFloat(123.455)), "Should round half-up")
	assert.Equal(t, Cents(12345), FromDecimalDollars(decimal.NewFromFloat(123.454)))
}

func TestSubFloor(t *testing.T) {
	assert.Equal(t, Cents(0), SubFloor(100, 500, 0), "Should floor at zero")
	assert.Equal(t, Cents(400), SubFloor(500, 100, 0))
	assert.Equal(t, Cents(-100), SubFloor(100, 200, -1000), "Should respect custom floor")
}

func TestMulRounding(t *testing.T) {
	rate := decimal.NewFromFloat(0.15)
	// 333 * 0.15 = 49.95 -> rounds half-up to 50
	assert.Equal(t, Cents(50), Mul(333, rate), "Should round half-up")
	assert.Equal(t, Cents(49), MulTrunc(333, rate), "Should truncate toward zero")

	// exact half case: 10 * 0.05 = 0.5 -> 1
	assert.Equal(t, Cents(1), Mul(10, decimal.NewFromFloat(0.05)), "Half rounds up")
}

func TestMax0(t *testing.T) {
	assert.Equal(t, Cents(0), Max0(-1))
	assert.Equal(t, Cents(7), Max0(7))
}

func TestCeilDiv(t *testing.T) {
	thousand := FromDollars(1000)
	assert.Equal(t, int64(0), CeilDiv(0, thousand), "Zero over threshold needs no steps")
	assert.Equal(t, int64(1), CeilDiv(1, thousand), "One cent over rounds up to a full step")
	assert.Equal(t, int64(1), CeilDiv(thousand, thousand))
	assert.Equal(t, int64(2), CeilDiv(thousand+1, thousand))
}

func TestRatio(t *testing.T) {
	assert.True(t, Ratio(50, 0).IsZero(), "Zero total yields zero ratio")
	assert.True(t, Ratio(50, 100).Equal(decimal.NewFromFloat(0.5)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "$1234.56", Cents(123456).String())
	assert.Equal(t, "-$0.01", Cents(-1).String())
}
