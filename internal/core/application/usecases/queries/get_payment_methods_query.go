package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetPaymentMethodsQueryIsNotConstructed = errors.New(
	"GetPaymentMethodsQuery must be created via NewGetPaymentMethodsQuery constructor",
)

// GetPaymentMethodsQuery asks which payment methods the customer of an
// order may use.
type GetPaymentMethodsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPaymentMethodsQuery(orderID kernel.UUID) (GetPaymentMethodsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentMethodsQuery{}, err
	}

	return GetPaymentMethodsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPaymentMethodsQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentMethodsQueryIsNotConstructed)
}

func (q GetPaymentMethodsQuery) OrderID() kernel.UUID {
	return q.orderID
}
