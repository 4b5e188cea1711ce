package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// PayoutDisburser is the extension point reached when an order's payout is
// about to be marked completed. It runs synchronously before the status
// changes; an error aborts the transition.
type PayoutDisburser interface {
	OnPayoutCompleted(ctx context.Context, o *order.Order) error
}
