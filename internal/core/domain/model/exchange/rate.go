package exchange

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRateIsNotConstructed is returned when a zero-value Rate is validated.
var ErrRateIsNotConstructed = errors.New("Rate must be created via NewRate")

// Rate is the number of KRW one unit of Currency is worth at AsOf.
//
// Example: a THB rate of 38.75 means 1 THB = 38.75 KRW.
//
// AsOf is the moment the quote refers to. How long a Rate may be served from
// a cache is decided by the cache, not by AsOf.
type Rate struct {
	currency kernel.Currency
	rate     decimal.Decimal
	asOf     time.Time
	source   Source
}

// NewRate validates every field of a quote.
//
// Returns:
//   - Rate on success
//   - joined validation errors when the currency is unset, the rate is not
//     positive, asOf is zero or the source is unknown
func NewRate(currency kernel.Currency, rate decimal.Decimal, asOf time.Time, source Source) (Rate, error) {
	var rateErr, asOfErr error
	if !rate.IsPositive() {
		rateErr = errs.NewValueIsInvalidErrorWithCause("rate is invalid", fmt.Errorf("%s is not greater than 0", rate))
	}
	if asOf.IsZero() {
		asOfErr = errs.NewValueIsRequiredError("asOf")
	}

	if err := errors.Join(currency.Validate(), rateErr, asOfErr, source.Validate()); err != nil {
		return Rate{}, err
	}

	return Rate{currency: currency, rate: rate, asOf: asOf, source: source}, nil
}

// BaseRate is the identity rate of KRW against itself.
func BaseRate(asOf time.Time) Rate {
	return Rate{currency: kernel.KRW, rate: decimal.NewFromInt(1), asOf: asOf, source: Default}
}

func (r Rate) Currency() kernel.Currency {
	return r.currency
}

func (r Rate) Rate() decimal.Decimal {
	return r.rate
}

func (r Rate) AsOf() time.Time {
	return r.asOf
}

func (r Rate) Source() Source {
	return r.source
}

// WithSource returns a copy of r reported as coming from source. The cache
// uses it to label rates it serves without changing their AsOf.
func (r Rate) WithSource(source Source) Rate {
	r.source = source
	return r
}

// ToBase converts amount in r's currency to KRW, rounded half-up to whole won.
func (r Rate) ToBase(amount decimal.Decimal) decimal.Decimal {
	return kernel.KRW.Round(amount.Mul(r.rate))
}

func (r Rate) Validate() error {
	if r.currency.Validate() != nil || !r.rate.IsPositive() {
		return ErrRateIsNotConstructed
	}
	return nil
}
