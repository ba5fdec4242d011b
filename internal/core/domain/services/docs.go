// Package services holds the calculation pipeline of the freight back-office:
// volume, business rules, customs duty and billing snapshots.
//
// The package includes:
//   - CbmCalculator: unit and order volumes in cubic metres
//   - RuleEvaluator: CBM and declared value thresholds, shipping method
//     override and member code check
//   - TariffCalculator: duty, special excise tax and VAT pipeline
//   - BillingBuilder: fee lines and dual THB/KRW totals
//   - Policy: the thresholds and rates all of the above read
//
// Everything here is deterministic for a given rate. Rates come through the
// RateProvider interface so the cached provider can be injected.
package services
