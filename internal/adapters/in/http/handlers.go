package http

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
)

// Use case handlers the server dispatches to. The application handlers
// satisfy these as they are.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	UpdateFulfillmentStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateFulfillmentStatusCommand) error
	}
	UpdatePayoutStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdatePayoutStatusCommand) error
	}
	ResetPayoutHandler interface {
		Handle(ctx context.Context, cmd commands.ResetPayoutCommand) error
	}
	AdjustFinancialsHandler interface {
		Handle(ctx context.Context, cmd commands.AdjustFinancialsCommand) error
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder             CreateOrderHandler
	UpdateFulfillmentStatus UpdateFulfillmentStatusHandler
	UpdatePayoutStatus      UpdatePayoutStatusHandler
	ResetPayout             ResetPayoutHandler
	AdjustFinancials        AdjustFinancialsHandler
	ListOrders              ListOrdersHandler
	GetOrder                GetOrderHandler
}
