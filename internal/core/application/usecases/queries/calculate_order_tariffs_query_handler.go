package queries

import (
	"context"

	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"
)

// CalculateOrderTariffsQueryHandler taxes the items of a stored order. Item
// prices are THB.
type CalculateOrderTariffsQueryHandler struct {
	orders     OrderReader
	calculator *services.TariffCalculator
}

func NewCalculateOrderTariffsQueryHandler(
	orders OrderReader,
	calculator *services.TariffCalculator,
) CalculateOrderTariffsQueryHandler {
	return CalculateOrderTariffsQueryHandler{orders: orders, calculator: calculator}
}

func (h CalculateOrderTariffsQueryHandler) Handle(
	ctx context.Context,
	query CalculateOrderTariffsQuery,
) (tariff.OrderCalculation, error) {
	if err := query.Validate(); err != nil {
		return tariff.OrderCalculation{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return tariff.OrderCalculation{}, err
	}

	return h.calculator.CalculateOrder(ctx, o)
}
