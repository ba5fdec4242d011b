// Package commands holds the freight operations that change state: order
// intake, rule evaluation, the billing lifecycle and the rate refresh.
// Each command is built by its constructor and run by a handler that owns
// one unit of work.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// aggregates it writes.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	BillingRepoFactory interface {
		BillingRepository() ports.BillingRepository
	}

	// OrderUoW serves order intake and the rule result write-back.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BillingUoW manages transactions for billing-only operations:
	// finalization and payment confirmation.
	BillingUoW interface {
		TxManager
		BillingRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// UoW manages transactions across both order and billing aggregates.
	// Used when a billing is created for an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   err = uow.BillingRepository().Add(ctx, b)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		BillingRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// RateRefresher reloads exchange rates from the remote source.
type RateRefresher interface {
	Refresh(ctx context.Context) error
}
