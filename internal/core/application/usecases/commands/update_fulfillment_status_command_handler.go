package commands

import (
	"context"
)

// UpdateFulfillmentStatusCommandHandler applies fulfillment transitions.
//
// Example:
//
//	cmd, _ := NewUpdateFulfillmentStatusCommand(id, order.FulfillmentShipped,
//	    &order.TrackingUpdate{Carrier: &carrier, Number: &number}, "", actor)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrIllegalTransition) {
//	    // report the allowed next statuses to the operator
//	}
type UpdateFulfillmentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewUpdateFulfillmentStatusCommandHandler(uowFactory OrderUoWFactory, clock Clock) UpdateFulfillmentStatusCommandHandler {
	return UpdateFulfillmentStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle loads the order, applies the transition and persists it in one
// transaction. A same-status request that changes nothing is not written.
func (h UpdateFulfillmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateFulfillmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changed, err := o.UpdateFulfillmentStatus(cmd.Status(), cmd.Tracking(), cmd.Note(), cmd.Actor(), h.clock())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
