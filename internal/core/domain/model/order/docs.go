// Package order implements the marketplace order aggregate: two independent
// status machines (fulfillment and vendor payout), the append-only ledger of
// every transition, and the price calculation behind the order totals.
//
// The package includes:
//   - Order: the aggregate root and its transition API
//   - FulfillmentStatus, PayoutStatus: the two status tracks and their
//     transition tables
//   - Ledger, HistoryEntry: the status history
//   - ComputeTotals, Financials, LineItem: pricing
//   - Customer, TrackingInfo, Actor: supporting value objects
//   - StatusChanged: the domain event emitted on every recorded transition
//
// Key business rules:
//   - Transitions are validated against a table before anything changes
//   - Re-applying the current status is always legal and never adds history
//   - Entering payout completed stamps the payout date; only an admin
//     override can leave completed, and it clears the date again
//   - Discounts are clamped so that the total never goes negative
package order
