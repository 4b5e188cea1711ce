package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// PayoutStatus is the state of the money owed to the vendor for an order.
//
// State transitions:
//
//	Pending ──> Processing ──> Completed
//	   │          ^     │
//	   │    retry │     v
//	   └────────> Failed
//
// Completed is terminal for ordinary updates; only an administrative
// override (Order.ResetPayout) can take an order out of it.
type PayoutStatus int

const (
	PayoutUnknown PayoutStatus = iota
	PayoutPending
	PayoutProcessing
	PayoutCompleted
	PayoutFailed
)

func getPayoutStatusStrings() map[PayoutStatus]string {
	//nolint:exhaustive // PayoutUnknown has no wire representation
	return map[PayoutStatus]string{
		PayoutPending:    "pending",
		PayoutProcessing: "processing",
		PayoutCompleted:  "completed",
		PayoutFailed:     "failed",
	}
}

func ParsePayoutStatus(s string) (PayoutStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getPayoutStatusStrings() {
		if name == needle {
			return status, nil
		}
	}
	return PayoutUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payout status", fmt.Errorf("%q is not a valid payout status", s))
}

func (s PayoutStatus) Validate() error {
	if _, ok := getPayoutStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payout status", fmt.Errorf("%d is not a valid payout status", s))
	}
	return nil
}

func (s PayoutStatus) String() string {
	if str, ok := getPayoutStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func AllPayoutStatuses() []PayoutStatus {
	return []PayoutStatus{PayoutPending, PayoutProcessing, PayoutCompleted, PayoutFailed}
}
