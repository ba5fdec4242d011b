// Package tariff models customs duty: HS code classifications, the prefix
// rate tables duty and special excise tax are resolved from, and the staged
// result of a duty computation.
package tariff
