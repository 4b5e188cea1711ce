package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateFulfillmentStatusCommandIsNotConstructed = errors.New(
	"UpdateFulfillmentStatusCommand must be created via NewUpdateFulfillmentStatusCommand constructor",
)

// UpdateFulfillmentStatusCommand asks to move an order along the
// fulfillment track, optionally attaching tracking details and a note.
type UpdateFulfillmentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	status   order.FulfillmentStatus
	tracking *order.TrackingUpdate
	note     string
	actor    order.Actor

	guard guard.ConstructorGuard
}

// NewUpdateFulfillmentStatusCommand validates identifiers and sanitises
// every free-text field. Whether the transition is legal is decided later,
// against the stored state.
func NewUpdateFulfillmentStatusCommand(
	orderID kernel.UUID, status order.FulfillmentStatus, tracking *order.TrackingUpdate, note string, actor order.Actor,
) (UpdateFulfillmentStatusCommand, error) {
	cmd := UpdateFulfillmentStatusCommand{
		orderID: orderID,
		status:  status,
		actor:   actor,
	}

	cleanNote, noteErr := sanitizeNote("note", note)
	cmd.note = cleanNote

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		actor.Validate(),
		noteErr,
		cmd.setTracking(tracking),
	); err != nil {
		return UpdateFulfillmentStatusCommand{}, err
	}

	cmd.guard = guard.NewConstructorGuard()
	return cmd, nil
}

func (c UpdateFulfillmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFulfillmentStatusCommandIsNotConstructed)
}

func (c UpdateFulfillmentStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateFulfillmentStatusCommand) Status() order.FulfillmentStatus { return c.status }
func (c UpdateFulfillmentStatusCommand) Note() string { return c.note }
func (c UpdateFulfillmentStatusCommand) Actor() order.Actor { return c.actor }

// Tracking is nil when the request carried no tracking details.
func (c UpdateFulfillmentStatusCommand) Tracking() *order.TrackingUpdate {
	if c.tracking == nil {
		return nil
	}
	t := *c.tracking
	return &t
}

func (c *UpdateFulfillmentStatusCommand) setTracking(t *order.TrackingUpdate) error {
	if t == nil || t.IsEmpty() {
		return nil
	}
	carrier, err1 := sanitizeOptional("tracking carrier", t.Carrier)
	number, err2 := sanitizeOptional("tracking number", t.Number)
	url, err3 := sanitizeOptional("tracking url", t.URL)
	note, err4 := sanitizeOptional("tracking note", t.Note)
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return err
	}

	cleaned := order.TrackingUpdate{Carrier: carrier, Number: number, URL: url, Note: note}
	if err := cleaned.Validate(); err != nil {
		return err
	}
	c.tracking = &cleaned
	return nil
}
