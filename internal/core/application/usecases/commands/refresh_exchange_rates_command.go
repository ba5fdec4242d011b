package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrRefreshExchangeRatesCommandIsNotConstructed = errors.New(
	"RefreshExchangeRatesCommand must be created via NewRefreshExchangeRatesCommand constructor",
)

// RefreshExchangeRatesCommand reloads every known exchange rate from the
// remote API. It is issued by the daily refresh job.
type RefreshExchangeRatesCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshExchangeRatesCommand() RefreshExchangeRatesCommand {
	return RefreshExchangeRatesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RefreshExchangeRatesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshExchangeRatesCommandIsNotConstructed)
}
