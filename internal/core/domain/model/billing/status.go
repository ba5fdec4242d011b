package billing

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a billing.
//
// State transitions:
//
//	Draft ──> Final
//
// The transition is one-way. A Final billing is locked: its fee lines and
// exchange rate never change again.
type Status int

const (
	// UnknownStatus catches uninitialized values.
	UnknownStatus Status = iota

	// Draft is a computed billing that may still be re-issued.
	Draft

	// Final is a locked billing the customer is charged from.
	Final
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Draft:         "DRAFT",
		Final:         "FINAL",
	}
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == normalized {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a billing status", s))
}

// Validate checks s is Draft or Final.
func (s Status) Validate() error {
	if s != Draft && s != Final {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Finalize transitions Draft to Final.
//
// Returns:
//   - (Final, nil) from Draft
//   - (UnknownStatus, IllegalStateTransitionError) from any other status,
//     including Final itself
func (s Status) Finalize() (Status, error) {
	if s != Draft {
		return UnknownStatus, errs.NewIllegalStateTransitionError("billing", s.String(), "finalize")
	}
	return Final, nil
}

// ValidateConfirmPayment allows payment confirmation only on Final billings.
func (s Status) ValidateConfirmPayment() error {
	if s != Final {
		return errs.NewIllegalStateTransitionError("billing", s.String(), "confirm payment for")
	}
	return nil
}
