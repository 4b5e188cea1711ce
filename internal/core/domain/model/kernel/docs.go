// Package kernel provides the value objects shared by every aggregate of the
// marketplace order domain.
//
// The package includes:
//   - UUID: identifiers for orders, vendors, products and customers
//   - Money: non-negative decimal amounts with banker's rounding to cents
//   - Address: validated postal addresses
//
// All types are immutable values and safe for concurrent use.
package kernel
