package ports

import (
	"context"

	"freight/internal/core/domain/model/billing"
)

// BillingEventType names a billing lifecycle event.
type BillingEventType string

const (
	BillingFinalized        BillingEventType = "billing.finalized"
	BillingPaymentConfirmed BillingEventType = "billing.payment_confirmed"
)

// BillingEventPublisher announces billing lifecycle changes to other systems.
// Handlers publish after the transaction commits; a publish failure never
// undoes the committed change.
type BillingEventPublisher interface {
	Publish(ctx context.Context, eventType BillingEventType, aggregate *billing.Billing) error
}
