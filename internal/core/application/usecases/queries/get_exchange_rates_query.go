package queries

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrGetExchangeRatesQueryIsNotConstructed = errors.New(
	"GetExchangeRatesQuery must be created via NewGetExchangeRatesQuery constructor",
)

// GetExchangeRatesQuery asks for the current rate of every known currency.
type GetExchangeRatesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetExchangeRatesQuery() GetExchangeRatesQuery {
	return GetExchangeRatesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetExchangeRatesQuery) Validate() error {
	return q.guard.Validate(ErrGetExchangeRatesQueryIsNotConstructed)
}
