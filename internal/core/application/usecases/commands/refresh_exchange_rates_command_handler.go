package commands

import (
	"context"
)

// RefreshExchangeRatesCommandHandler delegates to the rate provider. Rates
// that fail to refresh keep their cached value; the joined error names them.
type RefreshExchangeRatesCommandHandler struct {
	refresher RateRefresher
}

func NewRefreshExchangeRatesCommandHandler(refresher RateRefresher) RefreshExchangeRatesCommandHandler {
	return RefreshExchangeRatesCommandHandler{refresher: refresher}
}

func (h *RefreshExchangeRatesCommandHandler) Handle(ctx context.Context, cmd RefreshExchangeRatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.refresher.Refresh(ctx)
}
