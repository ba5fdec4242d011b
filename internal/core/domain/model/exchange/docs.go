// Package exchange models exchange rates against the KRW base currency:
// the Rate value object, the Source that produced it and the static fallback
// table used when no live rate is available.
package exchange
