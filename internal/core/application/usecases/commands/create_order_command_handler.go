package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CreateOrderCommandHandler registers new orders in pending/pending state
// under a freshly allocated order number.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	numbers    ports.OrderNumberGenerator
	clock      Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, numbers ports.OrderNumberGenerator, clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
		clock:      clockOrDefault(clock),
	}
}

// Handle allocates an order number, builds the aggregate and persists it.
// A number allocated for an order that then fails validation is not reused.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	number, err := h.numbers.Next(ctx)
	if err != nil {
		return err
	}

	p := cmd.Params()
	o, err := order.NewOrder(order.NewOrderParams{
		ID:              p.OrderID,
		Number:          number,
		VendorID:        p.VendorID,
		Customer:        p.Customer,
		Items:           p.Items,
		ShippingAddress: p.ShippingAddress,
		BillingAddress:  p.BillingAddress,
		ShippingFee:     p.ShippingFee,
		Tax:             p.Tax,
		Discount:        p.Discount,
		Actor:           p.Actor,
		CreatedAt:       h.clock(),
	})
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
