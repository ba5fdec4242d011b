package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/billingrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type GetPendingBillingsQueryHandlerTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *billingrepo.GormBillingRepository
	handler  queries.GetPendingBillingsQueryHandler
	issuedAt time.Time
}

func TestGetPendingBillingsQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(GetPendingBillingsQueryHandlerTestSuite))
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &billingrepo.BillingDTO{})
	suite.Require().NoError(err)
	suite.database = database
	suite.repo = billingrepo.NewGormBillingRepository(database.DB, noopTracker{})
	suite.handler = queries.NewGetPendingBillingsQueryHandler(database.DB)
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.DB.Exec("TRUNCATE TABLE billings").Error)
	suite.issuedAt = time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) saveBilling(accountID kernel.UUID, shippingFee string, issuedAt time.Time) *billing.Billing {
	snapshot, err := billing.NewSnapshot(kernel.NewUUID(), billing.FeeRequest{ShippingFee: d(shippingFee)}, thbRate(suite.T()))
	suite.Require().NoError(err)
	b, err := billing.NewBilling(kernel.NewUUID(), accountID, snapshot, issuedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), b))
	return b
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) TestHandle_NoBillings_ReturnsEmptySlice() {
	query, err := queries.NewGetPendingBillingsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) TestHandle_ReturnsUnpaidOldestFirst() {
	ctx := context.Background()
	account := kernel.NewUUID()

	later := suite.saveBilling(account, "200", suite.issuedAt.Add(time.Hour))
	earlier := suite.saveBilling(account, "100", suite.issuedAt)
	paid := suite.saveBilling(account, "300", suite.issuedAt.Add(-time.Hour))
	suite.saveBilling(kernel.NewUUID(), "400", suite.issuedAt)

	suite.Require().NoError(later.IssueFinal(suite.issuedAt.Add(2 * time.Hour)))
	suite.Require().NoError(suite.repo.Update(ctx, later))

	suite.Require().NoError(paid.IssueFinal(suite.issuedAt))
	payment, err := billing.NewPayment(billing.THPromptPay, "QR-9", "", suite.issuedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(paid.ConfirmPayment(payment))
	suite.Require().NoError(suite.repo.Update(ctx, paid))

	query, err := queries.NewGetPendingBillingsQuery(account)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(earlier.ID(), result[0].ID)
	suite.Equal(earlier.OrderID(), result[0].OrderID)
	suite.Equal(billing.Draft, result[0].Status)
	suite.True(d("100").Equal(result[0].TotalThb))
	suite.True(d("3875").Equal(result[0].TotalKrw))
	suite.True(suite.issuedAt.Equal(result[0].IssuedAt))

	suite.Equal(later.ID(), result[1].ID)
	suite.Equal(billing.Final, result[1].Status)
	suite.True(d("7750").Equal(result[1].TotalKrw))
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetPendingBillingsQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetPendingBillingsQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *GetPendingBillingsQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.saveBilling(kernel.NewUUID(), "1", suite.issuedAt)
	query, err := queries.NewGetPendingBillingsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}
