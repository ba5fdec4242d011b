package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
)

// ExchangeRateRepository stores the history of fetched rates so that
// point-in-time lookups can be answered without the remote API.
type ExchangeRateRepository interface {
	// Save appends rate to the history.
	Save(ctx context.Context, rate exchange.Rate) error

	// FindLatest returns the most recent stored rate of currency with
	// AsOf not after asOf.
	// Returns errs.ObjectNotFoundError when the history has no such rate.
	FindLatest(ctx context.Context, currency kernel.Currency, asOf time.Time) (exchange.Rate, error)
}

// ExchangeRateSource is the remote exchange rate API.
type ExchangeRateSource interface {
	// Fetch returns the KRW rate of currency, for the given day when date is
	// not nil. The result is labelled exchange.API.
	Fetch(ctx context.Context, currency kernel.Currency, date *time.Time) (exchange.Rate, error)
}
