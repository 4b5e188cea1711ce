package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdjustFinancialsCommandIsNotConstructed = errors.New(
	"AdjustFinancialsCommand must be created via NewAdjustFinancialsCommand constructor",
)

// AdjustFinancialsCommand corrects the shipping fee, tax or discount of an
// order after creation. Omitted components keep their current value.
type AdjustFinancialsCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	shippingFee *kernel.Money
	tax         *kernel.Money
	discount    *kernel.Money

	guard guard.ConstructorGuard
}

func NewAdjustFinancialsCommand(
	orderID kernel.UUID, shippingFee, tax, discount *kernel.Money,
) (AdjustFinancialsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdjustFinancialsCommand{}, err
	}
	if shippingFee == nil && tax == nil && discount == nil {
		return AdjustFinancialsCommand{}, errs.NewValueIsRequiredError("shippingFee, tax or discount")
	}

	return AdjustFinancialsCommand{
		orderID:     orderID,
		shippingFee: shippingFee,
		tax:         tax,
		discount:    discount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustFinancialsCommand) Validate() error {
	return c.guard.Validate(ErrAdjustFinancialsCommandIsNotConstructed)
}

func (c AdjustFinancialsCommand) OrderID() kernel.UUID { return c.orderID }
func (c AdjustFinancialsCommand) ShippingFee() *kernel.Money { return c.shippingFee }
func (c AdjustFinancialsCommand) Tax() *kernel.Money { return c.tax }
func (c AdjustFinancialsCommand) Discount() *kernel.Money { return c.discount }
