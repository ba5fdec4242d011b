package services

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Policy holds the thresholds and rates the business rules are evaluated with.
type Policy struct {
	// CbmThreshold in cubic metres; orders strictly above it ship by air.
	CbmThreshold decimal.Decimal

	// MinCbm is the floor a measured unit's volume is clamped up to.
	MinCbm decimal.Decimal

	// DeclaredValueThreshold in THB; orders strictly above it need extra
	// recipient information for customs.
	DeclaredValueThreshold decimal.Decimal

	// VatRate in percent.
	VatRate decimal.Decimal

	// DutyFreeLimitKrw and SmallAmountExemptionKrw are the advisory exemption
	// limits, inclusive.
	DutyFreeLimitKrw        decimal.Decimal
	SmallAmountExemptionKrw decimal.Decimal
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		CbmThreshold:            decimal.RequireFromString("29.0"),
		MinCbm:                  decimal.RequireFromString("0.000001"),
		DeclaredValueThreshold:  decimal.RequireFromString("1500.0"),
		VatRate:                 decimal.RequireFromString("10.0"),
		DutyFreeLimitKrw:        decimal.NewFromInt(660_000),
		SmallAmountExemptionKrw: decimal.NewFromInt(165_000),
	}
}

// Validate rejects negative values and a non-positive MinCbm.
func (p Policy) Validate() error {
	var joined []error
	check := func(name string, v decimal.Decimal) {
		if v.IsNegative() {
			joined = append(joined, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}

	check("cbmThreshold", p.CbmThreshold)
	check("declaredValueThreshold", p.DeclaredValueThreshold)
	check("vatRate", p.VatRate)
	check("dutyFreeLimitKrw", p.DutyFreeLimitKrw)
	check("smallAmountExemptionKrw", p.SmallAmountExemptionKrw)
	if !p.MinCbm.IsPositive() {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause("minCbm", fmt.Errorf("%s is not greater than 0", p.MinCbm)))
	}

	return errors.Join(joined...)
}
