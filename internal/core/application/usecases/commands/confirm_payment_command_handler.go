package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/ports"
)

// ConfirmPaymentCommandHandler completes the payment of a Final billing.
// Draft billings and already paid billings are rejected with an
// errs.IllegalStateTransitionError.
type ConfirmPaymentCommandHandler struct {
	uowFactory BillingUoWFactory
	publisher  ports.BillingEventPublisher
	logger     *slog.Logger
}

func NewConfirmPaymentCommandHandler(
	uowFactory BillingUoWFactory,
	publisher ports.BillingEventPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "confirm_payment"),
	}
}

// Handle confirms the payment, commits, then publishes
// billing.payment_confirmed.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*billing.Billing, error) {
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

	billingRepo := uow.BillingRepository()
	b, err := billingRepo.Get(ctx, cmd.BillingID())
	if err != nil {
		return nil, err
	}

	if err = b.ConfirmPayment(cmd.Payment()); err != nil {
		return nil, err
	}

	if err = billingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, ports.BillingPaymentConfirmed, b)
	return b, nil
}
