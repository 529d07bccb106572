package calculation

import (
	"github.com/piechiang/taxengine/pkg/money"
)

// PhaseOut linearly reduces maxBenefit as value rises from start to end.
// Boundary policy favors the taxpayer: exactly at start keeps the full
// benefit, exactly at end keeps zero. The interpolated amount rounds
// half-up.
func PhaseOut(value, start, end, maxBenefit money.Cents) money.Cents {
	if end <= start || value <= start {
		return maxBenefit
	}
	if value >= end {
		return 0
	}
	remaining := money.Ratio(end-value, end-start)
	return money.Mul(maxBenefit, remaining)
}

// ReduceBySteps reduces amount by perStep for every step (or fraction of
// a step, rounded UP) that excess extends past zero. This is the
// ceiling-stepped reduction the child tax credit uses: one dollar over
// the threshold costs a full step's reduction.
func ReduceBySteps(amount, excess, step, perStep money.Cents) money.Cents {
	if excess <= 0 || step <= 0 {
		return amount
	}
	steps := money.CeilDiv(excess, step)
	return money.SubFloor(amount, money.Cents(steps)*perStep, 0)
}
