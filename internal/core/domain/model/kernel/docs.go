// Package kernel holds the value objects shared by every aggregate of the
// freight back-office:
//   - UUID: identifier of orders, billings and accounts
//   - Currency: three-letter currency code with the rounding scale used for
//     amounts in that currency (KRW whole units, everything else two places)
package kernel
