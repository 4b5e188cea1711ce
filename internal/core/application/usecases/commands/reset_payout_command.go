package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrResetPayoutCommandIsNotConstructed = errors.New(
	"ResetPayoutCommand must be created via NewResetPayoutCommand constructor",
)

// ResetPayoutCommand is the administrative correction that returns a payout
// to pending and clears its payout date.
type ResetPayoutCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewResetPayoutCommand(orderID kernel.UUID, reason string, actor order.Actor) (ResetPayoutCommand, error) {
	cleanReason, reasonErr := sanitizeNote("reason", reason)
	if reasonErr == nil && cleanReason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), reasonErr); err != nil {
		return ResetPayoutCommand{}, err
	}

	return ResetPayoutCommand{
		orderID: orderID,
		reason:  cleanReason,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResetPayoutCommand) Validate() error {
	return c.guard.Validate(ErrResetPayoutCommandIsNotConstructed)
}

func (c ResetPayoutCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResetPayoutCommand) Reason() string { return c.reason }
func (c ResetPayoutCommand) Actor() order.Actor { return c.actor }
