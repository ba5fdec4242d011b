package commands_test

import (
	"errors"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEvaluateHandler(uow *MockUoW) commands.EvaluateOrderRulesCommandHandler {
	return commands.NewEvaluateOrderRulesCommandHandler(
		MockOrderUoWFactory{uow: uow},
		services.NewRuleEvaluator(services.DefaultPolicy()),
		discardLogger(),
	)
}

func TestEvaluateOrderRulesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, 30)
	cmd, _ := commands.NewEvaluateOrderRulesCommand(o.ID())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *order.Order) bool {
		_, ok := updated.RuleResult()
		return ok && updated.ShippingMethod() == order.Air
	})).Return(nil).Once()

	uow := transactionalUoW()
	uow.On("OrderRepository").Return(repo).Once()

	h := newEvaluateHandler(uow)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.CbmExceedsThreshold)
	assert.Equal(t, order.Air, result.RecommendedShippingMethod)
	assert.False(t, o.RuleEvaluatedAt().IsZero())
	repo.AssertExpectations(t)
	uow.AssertCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestEvaluateOrderRulesCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, 0)
	cmd, _ := commands.NewEvaluateOrderRulesCommand(o.ID())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(nil, errs.NewObjectNotFoundError("orderID", o.ID())).Once()

	uow := transactionalUoW()
	uow.On("OrderRepository").Return(repo).Once()

	h := newEvaluateHandler(uow)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestEvaluateOrderRulesCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, 0)
	cmd, _ := commands.NewEvaluateOrderRulesCommand(o.ID())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).Return(errors.New("update error")).Once()

	uow := transactionalUoW()
	uow.On("OrderRepository").Return(repo).Once()

	h := newEvaluateHandler(uow)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestEvaluateOrderRulesCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewEvaluateOrderRulesCommand(testOrder(t, 0).ID())

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	h := newEvaluateHandler(uow)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestEvaluateOrderRulesCommandHandler_Handle_ValidationError(t *testing.T) {
	h := newEvaluateHandler(new(MockUoW))

	_, err := h.Handle(t.Context(), commands.EvaluateOrderRulesCommand{})

	require.ErrorIs(t, err, commands.ErrEvaluateOrderRulesCommandIsNotConstructed)
}
