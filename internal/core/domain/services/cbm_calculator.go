package services

import (
	"freight/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// cbmScale is the number of decimal places volumes are rounded to.
const cbmScale = 6

var cubicCentimetresPerCubicMetre = decimal.NewFromInt(1_000_000)

// CbmSource tells which measurements an order volume was computed from.
type CbmSource string

const (
	CbmFromBoxes CbmSource = "BOXES"
	CbmFromItems CbmSource = "ITEMS"
)

// CbmResult is the volume of an order.
type CbmResult struct {
	// PerUnitCbm has one entry per box or item, in order.
	PerUnitCbm []decimal.Decimal
	TotalCbm   decimal.Decimal

	// ExceedsThreshold is true when TotalCbm is strictly above the threshold.
	ExceedsThreshold bool
	Source           CbmSource

	// IncompleteUnits counts boxes or items skipped for missing dimensions.
	IncompleteUnits int
}

// CbmCalculator computes volumes in cubic metres from centimetre dimensions.
//
// Business rules:
//   - cbm = width x height x depth x quantity / 1,000,000, half-up to 6 places
//   - a complete unit never computes to less than the policy floor
//   - a unit with a missing or non-positive side or quantity contributes 0
//   - an order volume comes from its boxes when it has any, else from its
//     items, never from both
type CbmCalculator struct {
	threshold decimal.Decimal
	minCbm    decimal.Decimal
}

func NewCbmCalculator(policy Policy) CbmCalculator {
	return CbmCalculator{threshold: policy.CbmThreshold, minCbm: policy.MinCbm}
}

// ComputeCbm returns the volume of quantity units of the given size.
//
// Example:
//
//	calc.ComputeCbm(d(50), d(40), d(30), 2) // 0.12
func (c CbmCalculator) ComputeCbm(width, height, depth decimal.Decimal, quantity int64) decimal.Decimal {
	dims := order.NewDimensions(width, height, depth)
	if !dims.IsComplete() || quantity <= 0 {
		return decimal.Zero
	}

	cbm := width.Mul(height).Mul(depth).Mul(decimal.NewFromInt(quantity)).
		Div(cubicCentimetresPerCubicMetre).
		Round(cbmScale)
	if cbm.LessThan(c.minCbm) {
		return c.minCbm
	}
	return cbm
}

// ComputeOrder sums the unit volumes of o.
func (c CbmCalculator) ComputeOrder(o *order.Order) CbmResult {
	result := CbmResult{TotalCbm: decimal.Zero}

	add := func(dims order.Dimensions, quantity int64) {
		cbm := c.ComputeCbm(dims.Width(), dims.Height(), dims.Depth(), quantity)
		if !dims.IsComplete() || quantity <= 0 {
			result.IncompleteUnits++
		}
		result.PerUnitCbm = append(result.PerUnitCbm, cbm)
		result.TotalCbm = result.TotalCbm.Add(cbm)
	}

	if boxes := o.Boxes(); len(boxes) > 0 {
		result.Source = CbmFromBoxes
		for _, box := range boxes {
			add(box.Dimensions(), 1)
		}
	} else {
		result.Source = CbmFromItems
		for _, item := range o.Items() {
			add(item.Dimensions(), item.Quantity())
		}
	}

	result.ExceedsThreshold = result.TotalCbm.GreaterThan(c.threshold)
	return result
}
