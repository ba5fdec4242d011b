package errs

import "errors"

// Kind groups errors into the failure classes adapters translate into
// transport status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindIllegalState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationFailure"
	case KindNotFound:
		return "NotFoundFailure"
	case KindIllegalState:
		return "IllegalStateTransition"
	default:
		return "InternalFailure"
	}
}

// KindOf classifies err by the sentinel it wraps. Errors joined with
// errors.Join are matched as well since errors.Is walks the whole tree.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrIllegalStateTransition), errors.Is(err, ErrVersionIsInvalid):
		return KindIllegalState
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}
