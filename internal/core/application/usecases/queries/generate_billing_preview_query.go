package queries

import (
	"errors"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGenerateBillingPreviewQueryIsNotConstructed = errors.New(
	"GenerateBillingPreviewQuery must be created via NewGenerateBillingPreviewQuery constructor",
)

// GenerateBillingPreviewQuery asks what a billing for an order would look
// like with the given fees, without storing anything.
type GenerateBillingPreviewQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	fees    billing.FeeRequest

	guard guard.ConstructorGuard
}

func NewGenerateBillingPreviewQuery(orderID kernel.UUID, fees billing.FeeRequest) (GenerateBillingPreviewQuery, error) {
	query := GenerateBillingPreviewQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setFees(fees),
	); err != nil {
		return GenerateBillingPreviewQuery{}, err
	}

	return query, nil
}

func (q GenerateBillingPreviewQuery) Validate() error {
	return q.guard.Validate(ErrGenerateBillingPreviewQueryIsNotConstructed)
}

func (q GenerateBillingPreviewQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GenerateBillingPreviewQuery) Fees() billing.FeeRequest {
	return q.fees
}

func (q *GenerateBillingPreviewQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GenerateBillingPreviewQuery) setFees(fees billing.FeeRequest) error {
	if err := fees.Validate(); err != nil {
		return err
	}

	q.fees = fees
	return nil
}

// BillingPreview is an unsaved billing. It is always Draft and carries no
// payment status.
type BillingPreview struct {
	Snapshot billing.Snapshot
	Status   billing.Status
}
