// Package queries contains read operations: previews, calculations and read
// models that never change stored state.
package queries

import (
	"context"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderReader loads an order aggregate. ports.OrderRepository satisfies it.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// RateLister lists the current rate of every known currency.
type RateLister interface {
	Rates(ctx context.Context) []exchange.Rate
}
