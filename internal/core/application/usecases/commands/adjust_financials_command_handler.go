package commands

import (
	"context"
)

// AdjustFinancialsCommandHandler reprices an order. Financial corrections
// are not status transitions and leave the history untouched.
type AdjustFinancialsCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewAdjustFinancialsCommandHandler(uowFactory OrderUoWFactory, clock Clock) AdjustFinancialsCommandHandler {
	return AdjustFinancialsCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h AdjustFinancialsCommandHandler) Handle(ctx context.Context, cmd AdjustFinancialsCommand) error {
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

	if err = o.AdjustFinancials(cmd.ShippingFee(), cmd.Tax(), cmd.Discount(), h.clock()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
