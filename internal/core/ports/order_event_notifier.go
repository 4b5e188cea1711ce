package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// OrderEventNotifier informs downstream collaborators about committed status
// changes. Delivery is fire-and-forget: failures are logged by the caller
// and never undo the change.
type OrderEventNotifier interface {
	NotifyStatusChanged(ctx context.Context, event order.StatusChanged) error
}
