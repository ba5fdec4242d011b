package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCurrencyIsNotConstructed is returned when a zero-value Currency is validated.
var ErrCurrencyIsNotConstructed = errs.NewValueIsRequiredError("currency must be created via NewCurrency")

var (
	// KRW is the base currency every exchange rate is quoted against.
	KRW = Currency{code: "KRW"}

	// THB is the currency fees and declared values are entered in.
	THB = Currency{code: "THB"}
)

// Currency is an ISO 4217 style three-letter currency code.
//
// Amounts in KRW are carried without a fractional part; every other currency
// is carried with two decimal places. Round applies that convention with
// half-up rounding.
//
// The zero value is invalid. Codes are stored upper case, so two currencies
// built from "thb" and "THB" compare equal with IsEqual and with ==.
//
// Example:
//
//	thb := kernel.MustCurrency("thb")
//	thb.IsEqual(kernel.THB)                            // true
//	thb.Round(decimal.RequireFromString("10.005"))     // 10.01
//	kernel.KRW.Round(decimal.RequireFromString("3875.5")) // 3876
type Currency struct {
	code string
}

// NewCurrency normalizes code to upper case and checks it is three ASCII letters.
//
// Example:
//
//	usd, err := kernel.NewCurrency("usd") // usd.Code() == "USD"
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a three-letter code", code),
		)
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return Currency{}, errs.NewValueIsInvalidErrorWithCause(
				"currency",
				fmt.Errorf("%q contains non-letter characters", code),
			)
		}
	}
	return Currency{code: normalized}, nil
}

// MustCurrency is NewCurrency for package-level tables and tests. It panics
// on an invalid code, so it must not be used on request input.
//
// Example:
//
//	var usd = kernel.MustCurrency("USD")
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the upper-case three-letter code, e.g. "THB".
func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}

// IsBase reports whether c is KRW, the currency every rate is quoted in.
// Converting into or out of the base currency needs a single rate.
//
// Example:
//
//	kernel.KRW.IsBase() // true
//	kernel.THB.IsBase() // false
func (c Currency) IsBase() bool {
	return c.code == KRW.code
}

// IsEqual reports whether c and other carry the same code.
func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}

// Scale is the number of decimal places amounts in c are rounded to.
func (c Currency) Scale() int32 {
	if c.IsBase() {
		return 0
	}
	return 2
}

// Round rounds amount half-up to the scale of c.
//
// Example:
//
//	kernel.THB.Round(decimal.RequireFromString("1.235")) // 1.24
//	kernel.KRW.Round(decimal.RequireFromString("0.5"))   // 1
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(amount, c.Scale())
}

// Validate returns ErrCurrencyIsNotConstructed for the zero value.
func (c Currency) Validate() error {
	if c.code == "" {
		return ErrCurrencyIsNotConstructed
	}
	return nil
}

// RoundHalfUp rounds d to places decimal places, with ties going away from
// zero. Every monetary and volumetric figure in the system is non-negative, so
// this is the commercial half-up rule.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}
