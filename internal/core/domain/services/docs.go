// Package services provides domain services for operations that need more
// than a single aggregate method.
//
// The package includes:
//   - PayoutScheduler: runs the payout completion hook and the payout
//     transition as one all-or-nothing step
package services
