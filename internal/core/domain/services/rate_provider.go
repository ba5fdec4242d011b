package services

import (
	"context"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
)

// RateProvider resolves the KRW rate of a currency. It never fails: when no
// live rate is available it returns a fallback rate labelled exchange.Default.
// A nil asOf asks for the current rate.
type RateProvider interface {
	GetRate(ctx context.Context, currency kernel.Currency, asOf *time.Time) exchange.Rate
}
