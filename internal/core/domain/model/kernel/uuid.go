package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero-value UUID is validated.
// It wraps errs.ErrValueIsRequired, so the HTTP layer answers 400 for it.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, billings and accounts. It wraps google/uuid so that
// the zero value can be told apart from a real identifier.
//
// The zero value is invalid: every aggregate constructor calls Validate on
// the ids it receives, so an id that never went through NewUUID,
// UUIDFromString or UUIDFromBytes is rejected at the domain boundary.
//
// UUID is a comparable value and safe to share between goroutines.
//
// Example:
//
//	billingID := kernel.NewUUID()
//	orderID, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. It is used for new
// billings and for orders whose id the client did not supply.
//
// Example:
//
//	b, err := billing.NewBilling(kernel.NewUUID(), orderID, snapshot, now)
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the text form of an identifier. Accepted forms:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Malformed input yields errs.ErrValueIsInvalid for the field "id"; the nil
// UUID yields ErrUUIDIsNotConstructed.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return nil, err // 400
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores a UUID from its 16-byte form. The slice must be
// exactly 16 bytes long and must not be all zeros.
//
// Example:
//
//	raw := id.Bytes()
//	restored, err := kernel.UUIDFromBytes(raw[:])
//	// restored.IsEqual(id) == true
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}

	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

// String returns the lower-case canonical form, e.g.
// "550e8400-e29b-41d4-a716-446655440000". Log attributes, JSON responses and
// kafka message keys all use it.
//
// Example:
//
//	logger.Info("billing finalized", "billing_id", b.ID().String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the wrapped google/uuid value. The postgres DTOs store it in
// uuid columns; other callers should prefer String.
//
// Example:
//
//	dto := OrderDTO{ID: o.ID().Bytes()}
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether u and other are the same identifier.
//
// Example:
//
//	a := kernel.NewUUID()
//	b := a
//	a.IsEqual(b)               // true
//	a.IsEqual(kernel.NewUUID()) // false
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID and nil for any
// identifier created through a constructor.
//
// Example:
//
//	if err := accountID.Validate(); err != nil {
//	    return nil, err
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
