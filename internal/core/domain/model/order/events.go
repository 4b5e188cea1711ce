package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// StatusChanged is recorded by the aggregate for every history entry it
// appends after creation. The unit of work hands these to the notifier once
// the surrounding transaction has committed.
type StatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	VendorID    kernel.UUID
	Seq         int
	Track       Track
	From        string
	To          string
	ActorID     string
	Note        string
	Override    bool
	OccurredAt  time.Time
}
