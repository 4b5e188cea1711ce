package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// UpdatePayoutStatusCommandHandler applies payout transitions through the
// PayoutScheduler, so that entering completed runs the disbursement hook
// inside the same transaction as the status change.
type UpdatePayoutStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  services.PayoutScheduler
	clock      Clock
}

func NewUpdatePayoutStatusCommandHandler(
	uowFactory OrderUoWFactory, scheduler services.PayoutScheduler, clock Clock,
) UpdatePayoutStatusCommandHandler {
	return UpdatePayoutStatusCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clockOrDefault(clock),
	}
}

func (h UpdatePayoutStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePayoutStatusCommand) error {
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

	changed, err := h.scheduler.Transition(ctx, o, cmd.Status(), cmd.Actor(), cmd.Note(), h.clock())
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
