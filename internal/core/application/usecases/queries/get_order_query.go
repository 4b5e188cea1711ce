package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full history.
type GetOrderQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

// GetOrderQueryResponse is the detail read model. Domain value objects are
// exposed as is; they are immutable.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Number            string
	VendorID          kernel.UUID
	VendorName        string
	Customer          order.Customer
	Items             []order.LineItem
	ShippingAddress   kernel.Address
	BillingAddress    kernel.Address
	Financials        order.Financials
	FulfillmentStatus order.FulfillmentStatus
	PayoutStatus      order.PayoutStatus
	Tracking          order.TrackingInfo
	PayoutDate        *time.Time
	History           []order.HistoryEntry
	CreatedAt         time.Time
	LastUpdated       time.Time
	Version           int

	// Next statuses reachable from the current ones, excluding the current
	// status itself.
	AllowedFulfillment []string
	AllowedPayout      []string
}
