package queries

import (
	"context"

	"freight/internal/core/domain/model/exchange"
)

type GetExchangeRatesQueryHandler struct {
	rates RateLister
}

func NewGetExchangeRatesQueryHandler(rates RateLister) GetExchangeRatesQueryHandler {
	return GetExchangeRatesQueryHandler{rates: rates}
}

// Handle never fails on a rate lookup; a currency whose API is down is
// reported with its cached or default value and the matching source.
func (h GetExchangeRatesQueryHandler) Handle(ctx context.Context, query GetExchangeRatesQuery) ([]exchange.Rate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.rates.Rates(ctx), nil
}
