package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrEvaluateOrderRulesCommandIsNotConstructed = errors.New(
	"EvaluateOrderRulesCommand must be created via NewEvaluateOrderRulesCommand constructor",
)

// EvaluateOrderRulesCommand asks for the business rules of an order to be
// evaluated and the result stored on the order.
//
// Example:
//
//	cmd, err := NewEvaluateOrderRulesCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type EvaluateOrderRulesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEvaluateOrderRulesCommand(orderID kernel.UUID) (EvaluateOrderRulesCommand, error) {
	cmd := EvaluateOrderRulesCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setOrderID(orderID); err != nil {
		return EvaluateOrderRulesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EvaluateOrderRulesCommand) Validate() error {
	return c.guard.Validate(ErrEvaluateOrderRulesCommandIsNotConstructed)
}

func (c EvaluateOrderRulesCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *EvaluateOrderRulesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
