package billing

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Fee line labels, in the order lines appear on a billing.
const (
	ShippingFeeLabel      = "shippingFee"
	LocalDeliveryFeeLabel = "localDeliveryFee"
	RepackingFeeLabel     = "repackingFee"
	HandlingFeeLabel      = "handlingFee"
	InsuranceFeeLabel     = "insuranceFee"
	CustomsFeeLabel       = "customsFee"
)

// FeeRequest carries the six fee amounts of a billing in THB. Omitted fees
// are zero (the zero decimal.Decimal is 0).
type FeeRequest struct {
	ShippingFee      decimal.Decimal
	LocalDeliveryFee decimal.Decimal
	RepackingFee     decimal.Decimal
	HandlingFee      decimal.Decimal
	InsuranceFee     decimal.Decimal
	CustomsFee       decimal.Decimal
}

// FeeLine is one labelled amount of a billing, in THB.
type FeeLine struct {
	Label     string
	AmountThb decimal.Decimal
}

// Validate rejects the request when any fee is negative. Every offending fee
// is named in the joined error.
func (r FeeRequest) Validate() error {
	var joined []error
	for _, line := range r.lines() {
		if line.AmountThb.IsNegative() {
			joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
				line.Label+" is invalid",
				fmt.Errorf("%s is negative", line.AmountThb),
			))
		}
	}
	return errors.Join(joined...)
}

// Lines returns the fee lines in billing order, each rounded to two places.
func (r FeeRequest) Lines() []FeeLine {
	lines := r.lines()
	for i := range lines {
		lines[i].AmountThb = kernel.THB.Round(lines[i].AmountThb)
	}
	return lines
}

func (r FeeRequest) lines() []FeeLine {
	return []FeeLine{
		{Label: ShippingFeeLabel, AmountThb: r.ShippingFee},
		{Label: LocalDeliveryFeeLabel, AmountThb: r.LocalDeliveryFee},
		{Label: RepackingFeeLabel, AmountThb: r.RepackingFee},
		{Label: HandlingFeeLabel, AmountThb: r.HandlingFee},
		{Label: InsuranceFeeLabel, AmountThb: r.InsuranceFee},
		{Label: CustomsFeeLabel, AmountThb: r.CustomsFee},
	}
}
