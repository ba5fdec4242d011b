package queries_test

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

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRate(ctx context.Context, currency kernel.Currency, asOf *time.Time) exchange.Rate {
	return m.Called(ctx, currency, asOf).Get(0).(exchange.Rate)
}

type MockRateLister struct {
	mock.Mock
}

func (m *MockRateLister) Rates(ctx context.Context) []exchange.Rate {
	return m.Called(ctx).Get(0).([]exchange.Rate)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func thbRate(t *testing.T) exchange.Rate {
	t.Helper()
	r, err := exchange.NewRate(kernel.THB, d("38.75"), time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), exchange.API)
	require.NoError(t, err)
	return r
}

func testOrder(t *testing.T, address string) *order.Order {
	t.Helper()
	account, err := order.NewAccount(kernel.NewUUID(), "M-100")
	require.NoError(t, err)
	shirt, err := order.NewItem("6109", 2, d("1"), order.NewDimensions(d("50"), d("40"), d("30")), d("100"))
	require.NoError(t, err)
	book, err := order.NewItem("4901", 1, d("0.5"), order.Dimensions{}, d("300"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), account, order.Sea, address, []order.Item{shirt, book}, nil)
	require.NoError(t, err)
	return o
}
