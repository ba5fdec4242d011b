package billing

import (
	"errors"
	"strings"
	"time"

	"freight/internal/pkg/errs"
)

// Payment records how and when a billing was settled.
type Payment struct {
	method        PaymentMethod
	reference     string
	depositorName string
	paidAt        time.Time
}

// NewPayment requires a supported method and the payment time. Reference and
// depositor name are optional; bank transfers usually carry both.
func NewPayment(method PaymentMethod, reference, depositorName string, paidAt time.Time) (Payment, error) {
	var paidAtErr error
	if paidAt.IsZero() {
		paidAtErr = errs.NewValueIsRequiredError("paidAt")
	}
	if err := errors.Join(method.Validate(), paidAtErr); err != nil {
		return Payment{}, err
	}

	return Payment{
		method:        method,
		reference:     strings.TrimSpace(reference),
		depositorName: strings.TrimSpace(depositorName),
		paidAt:        paidAt,
	}, nil
}

func (p Payment) Method() PaymentMethod {
	return p.method
}

func (p Payment) Reference() string {
	return p.reference
}

func (p Payment) DepositorName() string {
	return p.depositorName
}

func (p Payment) PaidAt() time.Time {
	return p.paidAt
}
