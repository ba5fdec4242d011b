package queries

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCalculateTariffQueryIsNotConstructed = errors.New(
	"CalculateTariffQuery must be created via NewCalculateTariffQuery constructor",
)

// CalculateTariffQuery is a single declared line to be taxed: an HS code, a
// unit price in currency and a quantity.
//
// Example:
//
//	query, err := NewCalculateTariffQuery("6109", decimal.NewFromInt(1000), 1, kernel.THB)
//	if err != nil {
//	    return err
//	}
//	calc, err := handler.Handle(ctx, query)
type CalculateTariffQuery struct { //nolint:recvcheck //using for validation
	hsCode    string
	unitPrice decimal.Decimal
	quantity  int64
	currency  kernel.Currency

	guard guard.ConstructorGuard
}

// NewCalculateTariffQuery rejects negative prices, non-positive quantities
// and malformed currencies. The HS code is free-form; an empty or unknown
// code is taxed at the default rate.
func NewCalculateTariffQuery(
	hsCode string,
	unitPrice decimal.Decimal,
	quantity int64,
	currency kernel.Currency,
) (CalculateTariffQuery, error) {
	query := CalculateTariffQuery{hsCode: hsCode, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setUnitPrice(unitPrice),
		query.setQuantity(quantity),
		query.setCurrency(currency),
	); err != nil {
		return CalculateTariffQuery{}, err
	}

	return query, nil
}

func (q CalculateTariffQuery) Validate() error {
	return q.guard.Validate(ErrCalculateTariffQueryIsNotConstructed)
}

func (q CalculateTariffQuery) HSCode() string {
	return q.hsCode
}

func (q CalculateTariffQuery) UnitPrice() decimal.Decimal {
	return q.unitPrice
}

func (q CalculateTariffQuery) Quantity() int64 {
	return q.quantity
}

func (q CalculateTariffQuery) Currency() kernel.Currency {
	return q.currency
}

func (q *CalculateTariffQuery) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", unitPrice))
	}

	q.unitPrice = unitPrice
	return nil
}

func (q *CalculateTariffQuery) setQuantity(quantity int64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not positive", quantity))
	}

	q.quantity = quantity
	return nil
}

func (q *CalculateTariffQuery) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}

	q.currency = currency
	return nil
}
