// Package billing provides the Billing aggregate: fee lines in THB, the
// exchange rate snapshot used to convert them to KRW and the DRAFT to FINAL
// lifecycle with payment confirmation.
//
// The package includes:
//   - FeeRequest, FeeLine: the six fee amounts of a billing
//   - Snapshot: computed fee lines, embedded rate and THB/KRW totals
//   - Billing: persisted snapshot with Status and PaymentStatus
//   - Payment, PaymentMethod: settlement details and the method sets offered
//     per destination country
//
// Key business rules:
//   - No fee may be negative; omitted fees are zero
//   - A billing may be created before the shipment is delivered
//   - Draft to Final is one-way and locks the snapshot
//   - Payment can only be confirmed on a Final billing, once
package billing
