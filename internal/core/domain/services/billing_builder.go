package services

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
)

// BillingBuilder composes billing snapshots from fee requests and the current
// THB rate.
type BillingBuilder struct {
	rates RateProvider
}

func NewBillingBuilder(rates RateProvider) *BillingBuilder {
	return &BillingBuilder{rates: rates}
}

// Build validates fees before resolving any rate, then snapshots the current
// THB rate into the result. TotalKrw is computed with that snapshotted rate.
func (b *BillingBuilder) Build(ctx context.Context, orderID kernel.UUID, fees billing.FeeRequest) (billing.Snapshot, error) {
	if err := fees.Validate(); err != nil {
		return billing.Snapshot{}, err
	}

	rate := b.rates.GetRate(ctx, kernel.THB, nil)
	return billing.NewSnapshot(orderID, fees, rate)
}
