package queries

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/services"
)

// GenerateBillingPreviewQueryHandler builds a billing snapshot for an order
// with the current THB rate. Calling it twice may give different KRW totals
// if the rate moved in between.
type GenerateBillingPreviewQueryHandler struct {
	orders  OrderReader
	builder *services.BillingBuilder
}

func NewGenerateBillingPreviewQueryHandler(
	orders OrderReader,
	builder *services.BillingBuilder,
) GenerateBillingPreviewQueryHandler {
	return GenerateBillingPreviewQueryHandler{orders: orders, builder: builder}
}

func (h GenerateBillingPreviewQueryHandler) Handle(
	ctx context.Context,
	query GenerateBillingPreviewQuery,
) (BillingPreview, error) {
	if err := query.Validate(); err != nil {
		return BillingPreview{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return BillingPreview{}, err
	}

	snapshot, err := h.builder.Build(ctx, o.ID(), query.Fees())
	if err != nil {
		return BillingPreview{}, err
	}

	return BillingPreview{Snapshot: snapshot, Status: billing.Draft}, nil
}
