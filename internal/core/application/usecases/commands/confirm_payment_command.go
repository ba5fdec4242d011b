package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records the payment of a Final billing.
//
// Example:
//
//	cmd, err := NewConfirmPaymentCommand(billingID, billing.THPromptPay, "TX-4411", "Somchai", paidAt)
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	billingID kernel.UUID
	payment   billing.Payment

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(
	billingID kernel.UUID,
	method billing.PaymentMethod,
	reference, depositorName string,
	paidAt time.Time,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setBillingID(billingID),
		cmd.setPayment(method, reference, depositorName, paidAt),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) BillingID() kernel.UUID {
	return c.billingID
}

func (c ConfirmPaymentCommand) Payment() billing.Payment {
	return c.payment
}

func (c *ConfirmPaymentCommand) setBillingID(billingID kernel.UUID) error {
	if err := billingID.Validate(); err != nil {
		return err
	}

	c.billingID = billingID
	return nil
}

func (c *ConfirmPaymentCommand) setPayment(
	method billing.PaymentMethod,
	reference, depositorName string,
	paidAt time.Time,
) error {
	payment, err := billing.NewPayment(method, reference, depositorName, paidAt)
	if err != nil {
		return err
	}

	c.payment = payment
	return nil
}
