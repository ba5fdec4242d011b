package queries

import (
	"context"

	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"
)

type CalculateTariffQueryHandler struct {
	calculator *services.TariffCalculator
}

func NewCalculateTariffQueryHandler(calculator *services.TariffCalculator) CalculateTariffQueryHandler {
	return CalculateTariffQueryHandler{calculator: calculator}
}

// Handle runs the duty pipeline with the current rate of the query currency.
func (h CalculateTariffQueryHandler) Handle(ctx context.Context, query CalculateTariffQuery) (tariff.Calculation, error) {
	if err := query.Validate(); err != nil {
		return tariff.Calculation{}, err
	}

	return h.calculator.Calculate(ctx, query.HSCode(), query.UnitPrice(), query.Quantity(), query.Currency())
}
