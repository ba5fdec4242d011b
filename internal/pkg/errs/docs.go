// Package errs holds the typed errors shared by the freight domain and its
// adapters.
//
// Every type wraps one sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid,
// ErrIllegalStateTransition) so callers test with errors.Is and read details
// with errors.As. KindOf collapses them into the four failure kinds the HTTP
// adapter maps to status codes:
//
//	ValidationFailure      ValueIsInvalid, ValueIsRequired, ValueIsOutOfRange
//	NotFoundFailure        ObjectNotFound
//	IllegalStateTransition IllegalStateTransition, VersionIsInvalid
//	InternalFailure        anything else
package errs
