package billing

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// PaymentStatus tracks whether a persisted billing has been paid.
//
//	Pending ──> Completed
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	Pending
	Completed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "UNKNOWN",
		Pending:              "PENDING",
		Completed:            "COMPLETED",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getPaymentStatusStrings() {
		if st != UnknownPaymentStatus && str == normalized {
			return st, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("%q is not a payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if s != Pending && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Complete transitions Pending to Completed. A second confirmation is an
// illegal transition.
func (s PaymentStatus) Complete() (PaymentStatus, error) {
	if s != Pending {
		return UnknownPaymentStatus, errs.NewIllegalStateTransitionError("payment", s.String(), "complete")
	}
	return Completed, nil
}
