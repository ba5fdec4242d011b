package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCalculateOrderTariffsQueryIsNotConstructed = errors.New(
	"CalculateOrderTariffsQuery must be created via NewCalculateOrderTariffsQuery constructor",
)

// CalculateOrderTariffsQuery asks for the duty of every item of an order.
type CalculateOrderTariffsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCalculateOrderTariffsQuery(orderID kernel.UUID) (CalculateOrderTariffsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return CalculateOrderTariffsQuery{}, err
	}

	return CalculateOrderTariffsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q CalculateOrderTariffsQuery) Validate() error {
	return q.guard.Validate(ErrCalculateOrderTariffsQueryIsNotConstructed)
}

func (q CalculateOrderTariffsQuery) OrderID() kernel.UUID {
	return q.orderID
}
