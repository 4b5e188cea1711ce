package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// RetryNote is recorded on the history entries written by automatic retries.
const RetryNote = "automatic payout retry"

var retryActor = order.SystemActor("payout-retry")

// RetryFailedPayoutsCommandHandler is driven by the payout retry job. The
// batch is claimed with row locks, so concurrent runners never retry the
// same order twice.
type RetryFailedPayoutsCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewRetryFailedPayoutsCommandHandler(uowFactory OrderUoWFactory, clock Clock) RetryFailedPayoutsCommandHandler {
	return RetryFailedPayoutsCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

// Handle returns the number of orders moved to processing. The whole batch
// commits or none of it does.
func (h RetryFailedPayoutsCommandHandler) Handle(ctx context.Context, cmd RetryFailedPayoutsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	failed, err := repo.GetAllInPayoutStatus(ctx, order.PayoutFailed, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(failed) == 0 {
		return 0, nil
	}

	now := h.clock()
	for _, o := range failed {
		if _, err = o.UpdatePayoutStatus(order.PayoutProcessing, retryActor, RetryNote, now); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(failed), nil
}
