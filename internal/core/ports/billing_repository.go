package ports

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
)

// BillingRepository defines the persistence contract for billing aggregates.
type BillingRepository interface {
	// Add persists a new billing. At most one billing exists per order.
	Add(ctx context.Context, aggregate *billing.Billing) error

	// Update persists a status or payment change of an existing billing.
	//
	// The write is conditional on the version the aggregate was loaded with.
	// When another writer got there first nothing is written and an
	// errs.VersionIsInvalidError is returned; on success the stored version is
	// incremented.
	Update(ctx context.Context, aggregate *billing.Billing) error

	// Get retrieves a billing by its unique identifier.
	// Returns errs.ObjectNotFoundError when no billing has the given id.
	Get(ctx context.Context, id kernel.UUID) (*billing.Billing, error)

	// GetByOrderID retrieves the billing issued for an order.
	// Returns errs.ObjectNotFoundError when the order has not been billed.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*billing.Billing, error)

	// ListPendingByAccount returns the billings of an account whose payment is
	// still pending, oldest first.
	ListPendingByAccount(ctx context.Context, accountID kernel.UUID) ([]*billing.Billing, error)
}
