package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// FulfillmentStatus is the physical progress of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered ──> Refunded
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Every status may also be re-applied to itself, which is how tracking
// details and notes are added without moving the order. Cancelled and
// Refunded are terminal.
type FulfillmentStatus int

const (
	// FulfillmentUnknown is the zero value and never validates.
	FulfillmentUnknown FulfillmentStatus = iota

	// FulfillmentPending is the status of a freshly placed order. Line items
	// may only be replaced while the order is pending.
	FulfillmentPending

	// FulfillmentConfirmed means the vendor accepted the order.
	FulfillmentConfirmed

	// FulfillmentShipped means the parcel left the vendor. Tracking details
	// become meaningful from here on.
	FulfillmentShipped

	// FulfillmentDelivered means the customer received the parcel.
	FulfillmentDelivered

	// FulfillmentCancelled means the order will not be fulfilled. Terminal.
	FulfillmentCancelled

	// FulfillmentRefunded is terminal.
	FulfillmentRefunded
)

func getFulfillmentStatusStrings() map[FulfillmentStatus]string {
	//nolint:exhaustive // FulfillmentUnknown has no wire representation
	return map[FulfillmentStatus]string{
		FulfillmentPending:   "pending",
		FulfillmentConfirmed: "confirmed",
		FulfillmentShipped:   "shipped",
		FulfillmentDelivered: "delivered",
		FulfillmentCancelled: "cancelled",
		FulfillmentRefunded:  "refunded",
	}
}

// ParseFulfillmentStatus maps the lowercase wire name back to a status.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getFulfillmentStatusStrings() {
		if name == needle {
			return status, nil
		}
	}
	return FulfillmentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fulfillment status", fmt.Errorf("%q is not a valid fulfillment status", s))
}

// Validate rejects FulfillmentUnknown and out-of-range values.
func (s FulfillmentStatus) Validate() error {
	if _, ok := getFulfillmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillment status", fmt.Errorf("%d is not a valid fulfillment status", s))
	}
	return nil
}

// String returns the lowercase wire name, or "unknown".
func (s FulfillmentStatus) String() string {
	if str, ok := getFulfillmentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowsTracking reports whether tracking details may be attached to an
// order in this status.
func (s FulfillmentStatus) AllowsTracking() bool {
	return s == FulfillmentShipped || s == FulfillmentDelivered
}

// AllFulfillmentStatuses lists the valid statuses in lifecycle order.
func AllFulfillmentStatuses() []FulfillmentStatus {
	return []FulfillmentStatus{
		FulfillmentPending,
		FulfillmentConfirmed,
		FulfillmentShipped,
		FulfillmentDelivered,
		FulfillmentCancelled,
		FulfillmentRefunded,
	}
}
