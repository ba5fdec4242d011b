package queries

import (
	"context"

	"freight/internal/core/domain/model/billing"
)

// GetPaymentMethodsQueryHandler picks the method set from the country in the
// order's recipient address.
type GetPaymentMethodsQueryHandler struct {
	orders OrderReader
}

func NewGetPaymentMethodsQueryHandler(orders OrderReader) GetPaymentMethodsQueryHandler {
	return GetPaymentMethodsQueryHandler{orders: orders}
}

func (h GetPaymentMethodsQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentMethodsQuery,
) ([]billing.PaymentMethod, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return billing.AvailablePaymentMethods(o.RecipientAddress()), nil
}
