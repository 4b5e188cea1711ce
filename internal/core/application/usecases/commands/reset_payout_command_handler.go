package commands

import (
	"context"
)

// ResetPayoutCommandHandler runs the payout override. Authorisation is
// enforced by the aggregate, which accepts only admin actors.
type ResetPayoutCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewResetPayoutCommandHandler(uowFactory OrderUoWFactory, clock Clock) ResetPayoutCommandHandler {
	return ResetPayoutCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h ResetPayoutCommandHandler) Handle(ctx context.Context, cmd ResetPayoutCommand) error {
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

	changed, err := o.ResetPayout(cmd.Actor(), cmd.Reason(), h.clock())
	if err != nil || !changed {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
