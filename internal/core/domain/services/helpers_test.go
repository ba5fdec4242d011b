package services_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rateAsOf = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dims(w, h, dp string) order.Dimensions {
	return order.NewDimensions(d(w), d(h), d(dp))
}

func item(t *testing.T, hsCode string, quantity int64, unitPrice string, dimensions order.Dimensions) order.Item {
	t.Helper()
	i, err := order.NewItem(hsCode, quantity, d("1"), dimensions, d(unitPrice))
	require.NoError(t, err)
	return i
}

func newOrder(t *testing.T, memberCode string, items []order.Item, boxes []order.Box) *order.Order {
	t.Helper()
	account, err := order.NewAccount(kernel.NewUUID(), memberCode)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), account, order.Sea, "Seoul, Korea", items, boxes)
	require.NoError(t, err)
	return o
}

func rate(t *testing.T, currency kernel.Currency, value string) exchange.Rate {
	t.Helper()
	r, err := exchange.NewRate(currency, d(value), rateAsOf, exchange.API)
	require.NoError(t, err)
	return r
}

// rateProviderMock is a testify mock of services.RateProvider.
type rateProviderMock struct {
	mock.Mock
}

func (m *rateProviderMock) GetRate(ctx context.Context, currency kernel.Currency, asOf *time.Time) exchange.Rate {
	args := m.Called(ctx, currency, asOf)
	return args.Get(0).(exchange.Rate)
}
