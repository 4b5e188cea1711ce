package order

import (
	"errors"
	"maps"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one product line of an order, priced at the time of purchase.
type LineItem struct {
	productID  kernel.UUID
	unitPrice  kernel.Money
	quantity   int
	attributes map[string]string
	guard      guard.ConstructorGuard
}

// NewLineItem validates the product reference and requires quantity ≥ 1.
// attributes holds variant choices such as size or colour and may be nil.
func NewLineItem(productID kernel.UUID, unitPrice kernel.Money, quantity int, attributes map[string]string) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		return LineItem{}, errs.NewInvalidAmountError("quantity", quantity)
	}
	return LineItem{
		productID:  productID,
		unitPrice:  unitPrice,
		quantity:   quantity,
		attributes: maps.Clone(attributes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ProductID() kernel.UUID { return li.productID }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }
func (li LineItem) Quantity() int { return li.quantity }

// Attributes returns a copy of the variant attributes.
func (li LineItem) Attributes() map[string]string {
	return maps.Clone(li.attributes)
}

// LineTotal is unitPrice × quantity, unrounded.
func (li LineItem) LineTotal() kernel.Money {
	return li.unitPrice.Times(li.quantity)
}
