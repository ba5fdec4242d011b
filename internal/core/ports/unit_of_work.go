package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups order and billing writes into one database transaction.
// Repositories obtained before Begin run outside any transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open, including after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	BillingRepository() BillingRepository
}
