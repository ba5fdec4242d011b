package order

import "github.com/shopspring/decimal"

// Dimensions are the outer measurements of one unit in centimetres.
//
// Dimensions are accepted as recorded: a missing (zero) or non-positive side
// is not an error, it only makes the unit incomplete so that it contributes
// nothing to the order volume.
type Dimensions struct {
	width  decimal.Decimal
	height decimal.Decimal
	depth  decimal.Decimal
}

func NewDimensions(width, height, depth decimal.Decimal) Dimensions {
	return Dimensions{width: width, height: height, depth: depth}
}

func (d Dimensions) Width() decimal.Decimal {
	return d.width
}

func (d Dimensions) Height() decimal.Decimal {
	return d.height
}

func (d Dimensions) Depth() decimal.Decimal {
	return d.depth
}

// IsComplete reports whether all three sides are strictly positive.
func (d Dimensions) IsComplete() bool {
	return d.width.IsPositive() && d.height.IsPositive() && d.depth.IsPositive()
}
