package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRetryFailedPayoutsCommandIsNotConstructed = errors.New(
	"RetryFailedPayoutsCommand must be created via NewRetryFailedPayoutsCommand constructor",
)

const MaxRetryBatchSize = 500

// RetryFailedPayoutsCommand moves up to batchSize failed payouts back to
// processing.
type RetryFailedPayoutsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRetryFailedPayoutsCommand(batchSize int) (RetryFailedPayoutsCommand, error) {
	if batchSize < 1 || batchSize > MaxRetryBatchSize {
		return RetryFailedPayoutsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxRetryBatchSize)
	}
	return RetryFailedPayoutsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryFailedPayoutsCommand) Validate() error {
	return c.guard.Validate(ErrRetryFailedPayoutsCommandIsNotConstructed)
}

func (c RetryFailedPayoutsCommand) BatchSize() int {
	return c.batchSize
}
