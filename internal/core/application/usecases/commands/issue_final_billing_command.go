package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrIssueFinalBillingCommandIsNotConstructed = errors.New(
	"IssueFinalBillingCommand must be created via NewIssueFinalBillingCommand constructor",
)

// IssueFinalBillingCommand moves a Draft billing to Final.
type IssueFinalBillingCommand struct { //nolint:recvcheck //using for validation
	billingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewIssueFinalBillingCommand(billingID kernel.UUID) (IssueFinalBillingCommand, error) {
	cmd := IssueFinalBillingCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setBillingID(billingID); err != nil {
		return IssueFinalBillingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueFinalBillingCommand) Validate() error {
	return c.guard.Validate(ErrIssueFinalBillingCommandIsNotConstructed)
}

func (c IssueFinalBillingCommand) BillingID() kernel.UUID {
	return c.billingID
}

func (c *IssueFinalBillingCommand) setBillingID(billingID kernel.UUID) error {
	if err := billingID.Validate(); err != nil {
		return err
	}

	c.billingID = billingID
	return nil
}
