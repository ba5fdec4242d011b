package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// EvaluateOrderRulesCommandHandler evaluates the CBM, declared value and
// member code rules of an order and writes the result back.
//
// The new result replaces the previous one as a whole and the order's
// effective shipping method follows the recommendation. Evaluating an
// unchanged order twice stores the same result.
type EvaluateOrderRulesCommandHandler struct {
	uowFactory OrderUoWFactory
	evaluator  *services.RuleEvaluator
	logger     *slog.Logger
}

func NewEvaluateOrderRulesCommandHandler(
	uowFactory OrderUoWFactory,
	evaluator *services.RuleEvaluator,
	logger *slog.Logger,
) EvaluateOrderRulesCommandHandler {
	return EvaluateOrderRulesCommandHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
		logger:     logger.With("component", "evaluate_order_rules"),
	}
}

// Handle loads the order, evaluates it and persists the result in one
// transaction. Returns the stored result.
func (h *EvaluateOrderRulesCommandHandler) Handle(
	ctx context.Context,
	cmd EvaluateOrderRulesCommand,
) (order.RuleResult, error) {
	if err := cmd.Validate(); err != nil {
		return order.RuleResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.RuleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.RuleResult{}, err
	}

	if volume := h.evaluator.Volume(o); volume.IncompleteUnits > 0 {
		h.logger.WarnContext(ctx, "units without complete dimensions counted as zero CBM",
			"order_id", o.ID().String(), "source", volume.Source, "units", volume.IncompleteUnits)
	}

	result, err := h.evaluator.Evaluate(o)
	if err != nil {
		return order.RuleResult{}, err
	}

	if err = o.ApplyRuleResult(result, time.Now().UTC()); err != nil {
		return order.RuleResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.RuleResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.RuleResult{}, err
	}

	return result, nil
}
