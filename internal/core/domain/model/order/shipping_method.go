package order

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// ShippingMethod is the transport mode of an order.
//
// A customer requests a method when placing the order; rule evaluation may
// override it (orders above the CBM threshold always ship by air).
type ShippingMethod int

const (
	// UnknownShippingMethod catches uninitialized values.
	UnknownShippingMethod ShippingMethod = iota

	// Sea is ocean freight, the default for orders within the CBM threshold.
	Sea

	// Air is air freight, forced for orders above the CBM threshold.
	Air
)

func getShippingMethodStrings() map[ShippingMethod]string {
	return map[ShippingMethod]string{
		UnknownShippingMethod: "UNKNOWN",
		Sea:                   "SEA",
		Air:                   "AIR",
	}
}

// ParseShippingMethod accepts "SEA" or "AIR" in any case.
//
// Example:
//
//	m, err := order.ParseShippingMethod("air") // order.Air, nil
//	_, err = order.ParseShippingMethod("rail") // ErrValueIsInvalid
//
// Returns:
//   - the matching ShippingMethod
//   - a ValueIsInvalidError for any other input
func ParseShippingMethod(s string) (ShippingMethod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for m, str := range getShippingMethodStrings() {
		if m != UnknownShippingMethod && str == normalized {
			return m, nil
		}
	}
	return UnknownShippingMethod, errs.NewValueIsInvalidErrorWithCause(
		"shipping method is invalid",
		fmt.Errorf("%q is not one of SEA, AIR", s),
	)
}

// Validate rejects UnknownShippingMethod and out-of-range values.
func (m ShippingMethod) Validate() error {
	if m != Sea && m != Air {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipping method is invalid",
			fmt.Errorf("%d is not a valid shipping method", m),
		)
	}
	return nil
}

// String returns "SEA", "AIR" or "UNKNOWN". The same text is stored in the
// orders table and sent over HTTP.
func (m ShippingMethod) String() string {
	if str, ok := getShippingMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}
