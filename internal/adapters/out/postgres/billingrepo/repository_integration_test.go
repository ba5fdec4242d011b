package billingrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/billingrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type BillingRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *billingrepo.GormBillingRepository
	tracker    *MockAggregateTracker
	issuedAt   time.Time
}

func TestBillingRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(BillingRepositoryIntegrationTestSuite))
}

func (suite *BillingRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &billingrepo.BillingDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *BillingRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *BillingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.DB.Exec("TRUNCATE TABLE billings").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = billingrepo.NewGormBillingRepository(suite.database.DB, suite.tracker)
	suite.issuedAt = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *BillingRepositoryIntegrationTestSuite) newBilling(accountID kernel.UUID, issuedAt time.Time) *billing.Billing {
	rate, err := exchange.NewRate(kernel.THB, decimal.RequireFromString("38.75"), suite.issuedAt, exchange.API)
	suite.Require().NoError(err)

	snapshot, err := billing.NewSnapshot(kernel.NewUUID(), billing.FeeRequest{
		ShippingFee:  decimal.RequireFromString("1200.50"),
		InsuranceFee: decimal.RequireFromString("49.50"),
	}, rate)
	suite.Require().NoError(err)

	b, err := billing.NewBilling(kernel.NewUUID(), accountID, snapshot, issuedAt)
	suite.Require().NoError(err)
	return b
}

func (suite *BillingRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsSnapshot() {
	ctx := context.Background()
	original := suite.newBilling(kernel.NewUUID(), suite.issuedAt)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal(original.AccountID(), restored.AccountID())
	suite.Equal(original.OrderID(), restored.OrderID())
	suite.Equal(billing.Draft, restored.Status())
	suite.Equal(billing.Pending, restored.PaymentStatus())
	suite.Nil(restored.Payment())
	suite.Nil(restored.FinalizedAt())
	suite.Equal(int64(1), restored.Version())

	snapshot := restored.Snapshot()
	suite.Require().Len(snapshot.FeeLines(), 6)
	suite.Equal(billing.ShippingFeeLabel, snapshot.FeeLines()[0].Label)
	suite.True(decimal.RequireFromString("1200.50").Equal(snapshot.FeeLines()[0].AmountThb))
	suite.True(decimal.RequireFromString("1250").Equal(snapshot.TotalThb()))
	suite.True(decimal.RequireFromString("48438").Equal(snapshot.TotalKrw()))
	suite.True(decimal.RequireFromString("38.75").Equal(snapshot.ExchangeRate().Rate()))
	suite.Equal(exchange.API, snapshot.ExchangeRate().Source())
	suite.True(suite.issuedAt.Equal(snapshot.ExchangeRate().AsOf()))
}

func (suite *BillingRepositoryIntegrationTestSuite) TestAdd_SecondBillingForOrder_IsRejected() {
	ctx := context.Background()
	first := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := billing.NewBilling(kernel.NewUUID(), first.AccountID(), first.Snapshot(), suite.issuedAt)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrIllegalStateTransition)
}

func (suite *BillingRepositoryIntegrationTestSuite) TestUpdate_FinalizeAndPay() {
	ctx := context.Background()
	b := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	suite.Require().NoError(b.IssueFinal(suite.issuedAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, b))
	suite.Equal(int64(2), b.Version())

	payment, err := billing.NewPayment(billing.THPromptPay, "TX-1", "Somchai", suite.issuedAt.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(b.ConfirmPayment(payment))
	suite.Require().NoError(suite.repository.Update(ctx, b))
	suite.Equal(int64(3), b.Version())

	restored, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(billing.Final, restored.Status())
	suite.Equal(billing.Completed, restored.PaymentStatus())
	suite.Require().NotNil(restored.FinalizedAt())
	suite.Require().NotNil(restored.Payment())
	suite.Equal(billing.THPromptPay, restored.Payment().Method())
	suite.Equal("TX-1", restored.Payment().Reference())
	suite.Equal("Somchai", restored.Payment().DepositorName())
	suite.Equal(int64(3), restored.Version())
	suite.True(decimal.RequireFromString("48438").Equal(restored.Snapshot().TotalKrw()))
}

func (suite *BillingRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_IsRejectedAndStateKept() {
	ctx := context.Background()
	b := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	first, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.IssueFinal(suite.issuedAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.IssueFinal(suite.issuedAt.Add(2 * time.Hour)))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	stored, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), stored.Version())
	suite.True(suite.issuedAt.Add(time.Hour).Equal(*stored.FinalizedAt()))
}

func (suite *BillingRepositoryIntegrationTestSuite) TestUpdate_ConcurrentFinalize_OneWins() {
	ctx := context.Background()
	b := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	const writers = 4
	loaded := make([]*billing.Billing, writers)
	for i := range loaded {
		l, err := suite.repository.Get(ctx, b.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(l.IssueFinal(suite.issuedAt.Add(time.Hour)))
		loaded[i] = l
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, l := range loaded {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := suite.repository.Update(ctx, l); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, success)
}

func (suite *BillingRepositoryIntegrationTestSuite) TestUpdate_UnknownBilling_ReturnsNotFound() {
	b := suite.newBilling(kernel.NewUUID(), suite.issuedAt)

	err := suite.repository.Update(context.Background(), b)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BillingRepositoryIntegrationTestSuite) TestGetByOrderID() {
	ctx := context.Background()
	b := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	suite.Require().NoError(suite.repository.Add(ctx, b))

	found, err := suite.repository.GetByOrderID(ctx, b.OrderID())
	suite.Require().NoError(err)
	suite.Equal(b.ID(), found.ID())

	_, err = suite.repository.GetByOrderID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BillingRepositoryIntegrationTestSuite) TestListPendingByAccount_OldestFirstOnlyPending() {
	ctx := context.Background()
	account := kernel.NewUUID()

	newer := suite.newBilling(account, suite.issuedAt.Add(time.Hour))
	older := suite.newBilling(account, suite.issuedAt)
	paid := suite.newBilling(account, suite.issuedAt.Add(-time.Hour))
	other := suite.newBilling(kernel.NewUUID(), suite.issuedAt)
	for _, b := range []*billing.Billing{newer, older, paid, other} {
		suite.Require().NoError(suite.repository.Add(ctx, b))
	}

	suite.Require().NoError(paid.IssueFinal(suite.issuedAt))
	payment, err := billing.NewPayment(billing.PayPal, "", "", suite.issuedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(paid.ConfirmPayment(payment))
	suite.Require().NoError(suite.repository.Update(ctx, paid))

	pending, err := suite.repository.ListPendingByAccount(ctx, account)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(older.ID(), pending[0].ID())
	suite.Equal(newer.ID(), pending[1].ID())
}
