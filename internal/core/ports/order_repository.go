package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their line items and status history.
type OrderRepository interface {
	// Add persists a new order aggregate together with its creation
	// history entries.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write succeeds only
	// if the stored version still equals aggregate.Version(); otherwise it
	// fails with errs.ErrWriteConflict. History is insert-only.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a complete order aggregate. Unknown ids fail with
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPayoutStatus returns up to limit orders whose payout track is
	// in status, oldest update first. Rows are locked for the surrounding
	// transaction and rows locked by others are skipped.
	GetAllInPayoutStatus(ctx context.Context, status order.PayoutStatus, limit int) ([]*order.Order, error)
}
