package order

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one declared line of an order. Unit prices are declared in THB.
type Item struct {
	hsCode     string
	quantity   int64
	weight     decimal.Decimal
	dimensions Dimensions
	unitPrice  decimal.Decimal
}

// NewItem validates the numeric fields of a declared line.
//
// An empty HS code and incomplete dimensions are accepted; tariff lookup falls
// back to the default rate and the CBM calculator skips the unit. Negative
// quantity, weight or unit price are rejected.
//
// Example:
//
//	item, err := order.NewItem("6109", 2, decimal.NewFromFloat(1.5),
//	    order.NewDimensions(decimal.NewFromInt(50), decimal.NewFromInt(40), decimal.NewFromInt(30)),
//	    decimal.NewFromInt(350))
func NewItem(
	hsCode string,
	quantity int64,
	weight decimal.Decimal,
	dimensions Dimensions,
	unitPrice decimal.Decimal,
) (Item, error) {
	item := Item{
		hsCode:     strings.TrimSpace(hsCode),
		dimensions: dimensions,
	}

	if err := errors.Join(
		item.setQuantity(quantity),
		item.setWeight(weight),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) HSCode() string {
	return i.hsCode
}

func (i Item) Quantity() int64 {
	return i.quantity
}

func (i Item) Weight() decimal.Decimal {
	return i.weight
}

func (i Item) Dimensions() Dimensions {
	return i.dimensions
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// DeclaredValue is unit price times quantity, in THB.
func (i Item) DeclaredValue() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(i.quantity))
}

func (i *Item) setQuantity(quantity int64) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is negative", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%s is negative", weight))
	}
	i.weight = weight
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
