package order

import (
	"slices"

	"github.com/shopspring/decimal"
)

// RuleResult is the outcome of evaluating the business rules of an order.
//
// A RuleResult is produced whole and applied whole: re-evaluating an order
// replaces the previous result, it never patches individual fields.
//
// Warnings keep a fixed relative order (CBM, declared value, member code).
// A warning is present only when its condition holds, so callers must match on
// the flags rather than on warning positions.
type RuleResult struct {
	TotalCbm                   decimal.Decimal
	CbmExceedsThreshold        bool
	TotalDeclaredValue         decimal.Decimal
	ValueExceedsThreshold      bool
	HasNoMemberCode            bool
	RecommendedShippingMethod  ShippingMethod
	RequiresExtraRecipientInfo bool
	Warnings                   []string
}

// HasWarnings reports whether any rule raised a warning.
func (r RuleResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Clone returns a copy that shares no memory with r.
func (r RuleResult) Clone() RuleResult {
	c := r
	c.Warnings = slices.Clone(r.Warnings)
	return c
}

func (r RuleResult) Validate() error {
	return r.RecommendedShippingMethod.Validate()
}
