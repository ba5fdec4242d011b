package billing

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrBillingIsNotConstructed is returned when a Billing was not created
	// through NewBilling or RestoreBilling.
	ErrBillingIsNotConstructed = errors.New("Billing must be created via NewBilling constructor")
)

// Billing is a persisted billing of an order. It is the aggregate root for a
// Snapshot and its lifecycle.
//
// Billing follows these invariants:
//   - A billing is created Draft and Pending, possibly before the shipment
//     has been delivered
//   - Finalizing locks the snapshot, including its exchange rate, so the
//     customer pays the rate in effect at finalization
//   - Payment can only be confirmed on a Final billing, and only once
//   - Version increases with every persisted change and guards concurrent
//     transitions
type Billing struct {
	id            kernel.UUID
	accountID     kernel.UUID
	snapshot      Snapshot
	status        Status
	paymentStatus PaymentStatus
	payment       *Payment
	issuedAt      time.Time
	finalizedAt   *time.Time
	version       int64

	isConstructed bool
}

// NewBilling creates a Draft, Pending billing for snapshot.
//
// Parameters:
//   - id: billing identifier
//   - accountID: account charged
//   - snapshot: computed fee lines and totals
//   - issuedAt: creation time
//
// Returns:
//   - *Billing on success
//   - joined validation errors otherwise
func NewBilling(id, accountID kernel.UUID, snapshot Snapshot, issuedAt time.Time) (*Billing, error) {
	var issuedAtErr error
	if issuedAt.IsZero() {
		issuedAtErr = errs.NewValueIsRequiredError("issuedAt")
	}

	if err := errors.Join(
		id.Validate(),
		accountIDError(accountID),
		snapshot.Validate(),
		issuedAtErr,
	); err != nil {
		return nil, err
	}

	return &Billing{
		id:            id,
		accountID:     accountID,
		snapshot:      snapshot,
		status:        Draft,
		paymentStatus: Pending,
		issuedAt:      issuedAt,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreBilling rebuilds a billing from persistence. It checks that status,
// payment status and payment are consistent with each other.
func RestoreBilling(
	id, accountID kernel.UUID,
	snapshot Snapshot,
	status Status,
	paymentStatus PaymentStatus,
	payment *Payment,
	issuedAt time.Time,
	finalizedAt *time.Time,
	version int64,
) (*Billing, error) {
	b, err := NewBilling(id, accountID, snapshot, issuedAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}
	if paymentStatus == Completed && (status != Final || payment == nil) {
		return nil, errs.NewValueIsInvalidError("completed payment requires a final billing with payment details")
	}
	if status == Final && finalizedAt == nil {
		return nil, errs.NewValueIsRequiredError("finalizedAt")
	}

	b.status = status
	b.paymentStatus = paymentStatus
	b.payment = payment
	b.finalizedAt = finalizedAt
	b.version = version
	return b, nil
}

// Validate ensures the Billing was built by NewBilling or RestoreBilling.
func (b *Billing) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBillingIsNotConstructed
	}
	return nil
}

func (b *Billing) ID() kernel.UUID {
	return b.id
}

func (b *Billing) AccountID() kernel.UUID {
	return b.accountID
}

func (b *Billing) OrderID() kernel.UUID {
	return b.snapshot.OrderID()
}

func (b *Billing) Snapshot() Snapshot {
	return b.snapshot
}

func (b *Billing) Status() Status {
	return b.status
}

func (b *Billing) PaymentStatus() PaymentStatus {
	return b.paymentStatus
}

// Payment returns the payment details, or nil while payment is pending.
func (b *Billing) Payment() *Payment {
	if b.payment == nil {
		return nil
	}
	p := *b.payment
	return &p
}

func (b *Billing) IssuedAt() time.Time {
	return b.issuedAt
}

// FinalizedAt is nil until the billing is finalized.
func (b *Billing) FinalizedAt() *time.Time {
	if b.finalizedAt == nil {
		return nil
	}
	t := *b.finalizedAt
	return &t
}

// Version is the persisted version this billing was loaded with.
func (b *Billing) Version() int64 {
	return b.version
}

// BumpVersion records that the current state has been persisted. Repositories
// call it after a successful version-checked write.
func (b *Billing) BumpVersion() {
	b.version++
}

// IssueFinal locks the billing.
//
// Returns:
//   - nil when the billing was Draft
//   - IllegalStateTransitionError when it was already Final
func (b *Billing) IssueFinal(at time.Time) error {
	next, err := b.status.Finalize()
	if err != nil {
		return err
	}

	b.status = next
	b.finalizedAt = &at
	return nil
}

// ConfirmPayment records payment on a Final billing.
//
// Returns:
//   - nil on success
//   - IllegalStateTransitionError on a Draft billing or a billing already paid
func (b *Billing) ConfirmPayment(payment Payment) error {
	if err := b.status.ValidateConfirmPayment(); err != nil {
		return err
	}

	next, err := b.paymentStatus.Complete()
	if err != nil {
		return err
	}

	b.paymentStatus = next
	b.payment = &payment
	return nil
}

func accountIDError(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accountID", err)
	}
	return nil
}
