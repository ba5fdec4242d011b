package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// CreateBillingCommandHandler issues the Draft billing of an order.
//
// An order is billed at most once: a second request for the same order is
// rejected with an errs.IllegalStateTransitionError and nothing is written.
// The billing may be created before the shipment is delivered; the fee lines
// and the THB rate snapshotted now stay until the billing is finalized.
type CreateBillingCommandHandler struct {
	uowFactory UoWFactory
	builder    *services.BillingBuilder
}

func NewCreateBillingCommandHandler(uowFactory UoWFactory, builder *services.BillingBuilder) CreateBillingCommandHandler {
	return CreateBillingCommandHandler{
		uowFactory: uowFactory,
		builder:    builder,
	}
}

// Handle checks the order exists and has no billing yet, builds the snapshot
// and persists a new Draft billing charged to the order's account.
func (h *CreateBillingCommandHandler) Handle(ctx context.Context, cmd CreateBillingCommand) (*billing.Billing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	billingRepo := uow.BillingRepository()
	existing, err := billingRepo.GetByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		return nil, errs.NewIllegalStateTransitionErrorWithCause(
			"order", "BILLED", "create billing for",
			errs.NewValueIsInvalidError("billing "+existing.ID().String()+" already exists"),
		)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	snapshot, err := h.builder.Build(ctx, o.ID(), cmd.Fees())
	if err != nil {
		return nil, err
	}

	created, err := billing.NewBilling(kernel.NewUUID(), o.Account().ID(), snapshot, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = billingRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
