package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockBillingRepository struct{ mock.Mock }

func (m *MockBillingRepository) Add(ctx context.Context, b *billing.Billing) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBillingRepository) Update(ctx context.Context, b *billing.Billing) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBillingRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Billing, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*billing.Billing)
	return b, args.Error(1)
}

func (m *MockBillingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*billing.Billing, error) {
	args := m.Called(ctx, orderID)
	b, _ := args.Get(0).(*billing.Billing)
	return b, args.Error(1)
}

func (m *MockBillingRepository) ListPendingByAccount(ctx context.Context, accountID kernel.UUID) ([]*billing.Billing, error) {
	args := m.Called(ctx, accountID)
	b, _ := args.Get(0).([]*billing.Billing)
	return b, args.Error(1)
}

// MockUoW satisfies OrderUoW, BillingUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BillingRepository() ports.BillingRepository {
	return m.Called().Get(0).(ports.BillingRepository)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockBillingUoWFactory struct{ uow *MockUoW }

func (f MockBillingUoWFactory) Create() commands.BillingUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, eventType ports.BillingEventType, b *billing.Billing) error {
	return m.Called(ctx, eventType, b).Error(0)
}

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) GetRate(ctx context.Context, currency kernel.Currency, asOf *time.Time) exchange.Rate {
	return m.Called(ctx, currency, asOf).Get(0).(exchange.Rate)
}

type MockRefresher struct{ mock.Mock }

func (m *MockRefresher) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// transactionalUoW expects Begin and a deferred Rollback; Commit is optional.
func transactionalUoW() *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testOrder(t *testing.T, boxes int) *order.Order {
	t.Helper()
	account, err := order.NewAccount(kernel.NewUUID(), "M-100")
	require.NoError(t, err)
	item, err := order.NewItem("6109", 2, d("1"), order.NewDimensions(d("50"), d("40"), d("30")), d("100"))
	require.NoError(t, err)

	list := make([]order.Box, boxes)
	for i := range list {
		list[i] = order.NewBox(order.NewDimensions(d("100"), d("100"), d("100")))
	}

	o, err := order.NewOrder(kernel.NewUUID(), account, order.Sea, "Bangkok, Thailand", []order.Item{item}, list)
	require.NoError(t, err)
	return o
}

func thbRate(t *testing.T) exchange.Rate {
	t.Helper()
	r, err := exchange.NewRate(kernel.THB, d("38.75"), time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), exchange.API)
	require.NoError(t, err)
	return r
}

func draftBilling(t *testing.T) *billing.Billing {
	t.Helper()
	snapshot, err := billing.NewSnapshot(kernel.NewUUID(), billing.FeeRequest{ShippingFee: d("1000")}, thbRate(t))
	require.NoError(t, err)
	b, err := billing.NewBilling(kernel.NewUUID(), kernel.NewUUID(), snapshot, time.Now().UTC())
	require.NoError(t, err)
	return b
}

func finalBilling(t *testing.T) *billing.Billing {
	t.Helper()
	b := draftBilling(t)
	require.NoError(t, b.IssueFinal(time.Now().UTC()))
	return b
}
