package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderParams is the checkout hand-off: one vendor's share of a cart,
// with the discount already validated upstream.
type CreateOrderParams struct {
	OrderID         kernel.UUID
	VendorID        kernel.UUID
	Customer        order.Customer
	Items           []order.LineItem
	ShippingAddress kernel.Address
	BillingAddress  *kernel.Address
	ShippingFee     kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	Actor           order.Actor
}

// CreateOrderCommand represents a request to register a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    OrderID:         kernel.NewUUID(),
//	    VendorID:        vendorID,
//	    Customer:        customer,
//	    Items:           items,
//	    ShippingAddress: address,
//	    ShippingFee:     kernel.MustMoney("4.99"),
//	    Actor:           order.SystemActor("checkout"),
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params CreateOrderParams

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	var itemsErr error
	if len(p.Items) == 0 {
		itemsErr = order.ErrItemsRequired
	}

	var vendorErr error
	if err := p.VendorID.Validate(); err != nil {
		vendorErr = errs.NewValueIsRequiredErrorWithCause("vendorId", err)
	}

	if err := errors.Join(
		p.OrderID.Validate(),
		vendorErr,
		p.Customer.Validate(),
		itemsErr,
		p.ShippingAddress.Validate(),
		p.Actor.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{params: p, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier chosen by the caller, which makes retried
// submissions detectable as duplicates.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.params.OrderID
}

func (c CreateOrderCommand) Params() CreateOrderParams {
	return c.params
}
