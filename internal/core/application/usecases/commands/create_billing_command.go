package commands

import (
	"errors"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateBillingCommandIsNotConstructed = errors.New(
	"CreateBillingCommand must be created via NewCreateBillingCommand constructor",
)

// CreateBillingCommand represents a request to issue a Draft billing for an
// order. Fees are in THB; omitted fees are zero.
//
// Example:
//
//	cmd, err := NewCreateBillingCommand(orderID, billing.FeeRequest{
//	    ShippingFee: decimal.NewFromInt(1200),
//	    HandlingFee: decimal.NewFromInt(100),
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid fees: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateBillingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	fees    billing.FeeRequest

	guard guard.ConstructorGuard
}

// NewCreateBillingCommand validates the order id and every fee. A negative
// fee is rejected here, before any order or rate lookup.
func NewCreateBillingCommand(orderID kernel.UUID, fees billing.FeeRequest) (CreateBillingCommand, error) {
	cmd := CreateBillingCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFees(fees),
	); err != nil {
		return CreateBillingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBillingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBillingCommandIsNotConstructed)
}

func (c CreateBillingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateBillingCommand) Fees() billing.FeeRequest {
	return c.fees
}

func (c *CreateBillingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateBillingCommand) setFees(fees billing.FeeRequest) error {
	if err := fees.Validate(); err != nil {
		return err
	}

	c.fees = fees
	return nil
}
