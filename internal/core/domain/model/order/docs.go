// Package order provides the Order aggregate of the freight back-office: the
// declared items, the measured boxes, the owning account and the latest
// business-rule evaluation.
//
// The package includes:
//   - Order: aggregate root, the only place a RuleResult is applied
//   - Item, Box, Dimensions: the raw measurements volume and value are derived from
//   - Account: owning account and its optional member code
//   - ShippingMethod: SEA or AIR, requested by the customer and possibly
//     overridden by rule evaluation
//   - RuleResult: immutable outcome of a rule evaluation
//
// Key business rules:
//   - Declared values are in THB
//   - Incomplete dimensions are tolerated, they only add nothing to the volume
//   - Applying a RuleResult replaces the previous one entirely and sets the
//     effective shipping method to the recommended one
package order
