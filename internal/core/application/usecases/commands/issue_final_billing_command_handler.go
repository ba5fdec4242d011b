package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/ports"
)

// IssueFinalBillingCommandHandler finalizes a billing and announces it.
//
// The Update is version-checked: when two requests race, one wins and the
// other gets an errs.VersionIsInvalidError with the stored billing untouched.
// Finalizing a Final billing fails with an errs.IllegalStateTransitionError.
type IssueFinalBillingCommandHandler struct {
	uowFactory BillingUoWFactory
	publisher  ports.BillingEventPublisher
	logger     *slog.Logger
}

func NewIssueFinalBillingCommandHandler(
	uowFactory BillingUoWFactory,
	publisher ports.BillingEventPublisher,
	logger *slog.Logger,
) IssueFinalBillingCommandHandler {
	return IssueFinalBillingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "issue_final_billing"),
	}
}

// Handle finalizes the billing, commits, then publishes billing.finalized.
// A publish failure is logged; the billing stays Final.
func (h *IssueFinalBillingCommandHandler) Handle(ctx context.Context, cmd IssueFinalBillingCommand) (*billing.Billing, error) {
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

	if err = b.IssueFinal(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = billingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, h.logger, ports.BillingFinalized, b)
	return b, nil
}

func publish(
	ctx context.Context,
	publisher ports.BillingEventPublisher,
	logger *slog.Logger,
	eventType ports.BillingEventType,
	b *billing.Billing,
) {
	if err := publisher.Publish(ctx, eventType, b); err != nil {
		logger.ErrorContext(ctx, "failed to publish billing event",
			"event", string(eventType), "billing_id", b.ID().String(), "error", err)
	}
}
