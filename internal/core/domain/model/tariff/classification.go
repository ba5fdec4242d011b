package tariff

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Classification is the tariff profile of an HS code. Rates are percentages.
type Classification struct {
	hsCode      string
	basicRate   decimal.Decimal
	wtoRate     decimal.Decimal
	specialRate decimal.Decimal
}

// NewClassification rejects negative rates. An empty HS code is allowed and
// stands for "unclassified".
func NewClassification(hsCode string, basicRate, wtoRate, specialRate decimal.Decimal) (Classification, error) {
	if err := errors.Join(
		nonNegative("basicRate", basicRate),
		nonNegative("wtoRate", wtoRate),
		nonNegative("specialRate", specialRate),
	); err != nil {
		return Classification{}, err
	}

	return Classification{
		hsCode:      NormalizeHSCode(hsCode),
		basicRate:   basicRate,
		wtoRate:     wtoRate,
		specialRate: specialRate,
	}, nil
}

func (c Classification) HSCode() string {
	return c.hsCode
}

func (c Classification) BasicRate() decimal.Decimal {
	return c.basicRate
}

func (c Classification) WTORate() decimal.Decimal {
	return c.wtoRate
}

// SpecialRate is the special excise tax rate.
func (c Classification) SpecialRate() decimal.Decimal {
	return c.specialRate
}

// AppliedRate is the duty rate: the WTO rate when one is set, else the basic rate.
func (c Classification) AppliedRate() decimal.Decimal {
	if c.wtoRate.IsPositive() {
		return c.wtoRate
	}
	return c.basicRate
}

func nonNegative(name string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%s is negative", rate))
	}
	return nil
}
