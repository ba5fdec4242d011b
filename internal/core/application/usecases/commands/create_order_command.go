package commands

import (
	"errors"
	"slices"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers an order received from intake so that rules,
// tariffs and billing can be computed for it.
//
// Example:
//
//	account, _ := order.NewAccount(accountID, "M-100")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), account, order.Sea,
//	    "Bangkok, Thailand", items, boxes)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	account          order.Account
	shippingMethod   order.ShippingMethod
	recipientAddress string
	items            []order.Item
	boxes            []order.Box

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the identifiers, the requested shipping method
// and that at least one item is declared. Boxes are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	account order.Account,
	shippingMethod order.ShippingMethod,
	recipientAddress string,
	items []order.Item,
	boxes []order.Box,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		recipientAddress: recipientAddress,
		boxes:            slices.Clone(boxes),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAccount(account),
		cmd.setShippingMethod(shippingMethod),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Account() order.Account {
	return c.account
}

func (c CreateOrderCommand) ShippingMethod() order.ShippingMethod {
	return c.shippingMethod
}

func (c CreateOrderCommand) RecipientAddress() string {
	return c.recipientAddress
}

func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) Boxes() []order.Box {
	return slices.Clone(c.boxes)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAccount(account order.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	c.account = account
	return nil
}

func (c *CreateOrderCommand) setShippingMethod(m order.ShippingMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}

	c.shippingMethod = m
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = slices.Clone(items)
	return nil
}
