package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdatePayoutStatusCommandIsNotConstructed = errors.New(
	"UpdatePayoutStatusCommand must be created via NewUpdatePayoutStatusCommand constructor",
)

// UpdatePayoutStatusCommand asks to move an order along the payout track.
type UpdatePayoutStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.PayoutStatus
	note    string
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewUpdatePayoutStatusCommand(
	orderID kernel.UUID, status order.PayoutStatus, note string, actor order.Actor,
) (UpdatePayoutStatusCommand, error) {
	cleanNote, noteErr := sanitizeNote("note", note)
	if err := errors.Join(orderID.Validate(), status.Validate(), actor.Validate(), noteErr); err != nil {
		return UpdatePayoutStatusCommand{}, err
	}

	return UpdatePayoutStatusCommand{
		orderID: orderID,
		status:  status,
		note:    cleanNote,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePayoutStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePayoutStatusCommandIsNotConstructed)
}

func (c UpdatePayoutStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdatePayoutStatusCommand) Status() order.PayoutStatus { return c.status }
func (c UpdatePayoutStatusCommand) Note() string { return c.note }
func (c UpdatePayoutStatusCommand) Actor() order.Actor { return c.actor }
