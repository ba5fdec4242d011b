package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(),
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.BoxDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.DB.Exec("TRUNCATE TABLE orders, order_items, order_boxes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(boxes int) *order.Order {
	account, err := order.NewAccount(kernel.NewUUID(), "M-100")
	suite.Require().NoError(err)

	first, err := order.NewItem("6109.10", 2, dec("1.5"), order.NewDimensions(dec("50"), dec("40"), dec("30")), dec("350.25"))
	suite.Require().NoError(err)
	second, err := order.NewItem("", 1, dec("0"), order.Dimensions{}, dec("10"))
	suite.Require().NoError(err)

	list := make([]order.Box, 0, boxes)
	for i := range boxes {
		side := decimal.NewFromInt(int64(100 + i))
		list = append(list, order.NewBox(order.NewDimensions(side, dec("100"), dec("100"))))
	}

	o, err := order.NewOrder(kernel.NewUUID(), account, order.Sea, "Bangkok, Thailand", []order.Item{first, second}, list)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsChildrenInOrder() {
	ctx := context.Background()
	original := suite.createTestOrder(3)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal(original.Account().ID(), restored.Account().ID())
	suite.Equal("M-100", restored.Account().MemberCode())
	suite.Equal(order.Sea, restored.RequestedShippingMethod())
	suite.Equal(order.Sea, restored.ShippingMethod())
	suite.Equal("Bangkok, Thailand", restored.RecipientAddress())

	suite.Require().Len(restored.Items(), 2)
	suite.Equal("6109.10", restored.Items()[0].HSCode())
	suite.True(dec("350.25").Equal(restored.Items()[0].UnitPrice()))
	suite.True(dec("1.5").Equal(restored.Items()[0].Weight()))
	suite.False(restored.Items()[1].Dimensions().IsComplete())

	suite.Require().Len(restored.Boxes(), 3)
	for i, box := range restored.Boxes() {
		suite.True(decimal.NewFromInt(int64(100 + i)).Equal(box.Dimensions().Width()))
	}

	_, evaluated := restored.RuleResult()
	suite.False(evaluated)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", original.ID(), original)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsIllegalState() {
	ctx := context.Background()
	original := suite.createTestOrder(0)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	err := suite.repository.Add(ctx, original)

	suite.Require().ErrorIs(err, errs.ErrIllegalStateTransition)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsRuleResultAndShippingMethod() {
	ctx := context.Background()
	o := suite.createTestOrder(0)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	result := order.RuleResult{
		TotalCbm:                   dec("30.000000"),
		CbmExceedsThreshold:        true,
		TotalDeclaredValue:         dec("710.50"),
		RecommendedShippingMethod:  order.Air,
		RequiresExtraRecipientInfo: false,
		Warnings:                   []string{"CBM 30.000000 m³ exceeds the 29.0 m³ threshold, shipping method switched to AIR"},
	}
	evaluatedAt := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	suite.Require().NoError(o.ApplyRuleResult(result, evaluatedAt))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Air, restored.ShippingMethod())
	suite.Equal(order.Sea, restored.RequestedShippingMethod())

	stored, ok := restored.RuleResult()
	suite.Require().True(ok)
	suite.True(result.TotalCbm.Equal(stored.TotalCbm))
	suite.True(result.TotalDeclaredValue.Equal(stored.TotalDeclaredValue))
	suite.True(stored.CbmExceedsThreshold)
	suite.Equal(order.Air, stored.RecommendedShippingMethod)
	suite.Equal(result.Warnings, stored.Warnings)
	suite.True(evaluatedAt.Equal(restored.RuleEvaluatedAt()))
	suite.Len(restored.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesPreviousResult() {
	ctx := context.Background()
	o := suite.createTestOrder(0)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first := order.RuleResult{RecommendedShippingMethod: order.Air, Warnings: []string{"a", "b"}}
	suite.Require().NoError(o.ApplyRuleResult(first, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	second := order.RuleResult{RecommendedShippingMethod: order.Sea, Warnings: []string{}}
	suite.Require().NoError(o.ApplyRuleResult(second, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	stored, ok := restored.RuleResult()
	suite.Require().True(ok)
	suite.Empty(stored.Warnings)
	suite.Equal(order.Sea, restored.ShippingMethod())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	o := suite.createTestOrder(0)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_InvalidID_ReturnsError() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}
