package order

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Financials is the price breakdown of an order. It is only produced by
// ComputeTotals, so TotalAmount is always consistent with its components.
type Financials struct {
	subtotal    kernel.Money
	shippingFee kernel.Money
	tax         kernel.Money
	discount    kernel.Money
	totalAmount kernel.Money
}

func (f Financials) Subtotal() kernel.Money { return f.subtotal }
func (f Financials) ShippingFee() kernel.Money { return f.shippingFee }
func (f Financials) Tax() kernel.Money { return f.tax }

// Discount is the applied discount, after clamping.
func (f Financials) Discount() kernel.Money { return f.discount }
func (f Financials) TotalAmount() kernel.Money { return f.totalAmount }

// ComputeTotals prices a set of line items.
//
//	subtotal = round(Σ unitPrice × quantity)
//	discount = min(round(discount), subtotal + shippingFee)
//	total    = subtotal + shippingFee + tax − discount
//
// Every amount is rounded half-to-even to two decimals. The discount clamp
// keeps the total non-negative. Non-positive quantities and unconstructed
// line items fail with errs.ErrInvalidAmount. The function is pure.
func ComputeTotals(items []LineItem, shippingFee, tax, discount kernel.Money) (Financials, error) {
	fees := []struct {
		name   string
		amount kernel.Money
	}{{"shippingFee", shippingFee}, {"tax", tax}, {"discount", discount}}
	for _, fee := range fees {
		if fee.amount.Amount().IsNegative() {
			return Financials{}, errs.NewInvalidAmountError(fee.name, fee.amount.Amount().String())
		}
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if item.quantity < 1 {
			return Financials{}, errs.NewInvalidAmountError("quantity", item.quantity)
		}
		if item.unitPrice.Amount().IsNegative() {
			return Financials{}, errs.NewInvalidAmountError("unitPrice", item.unitPrice.Amount().String())
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	f := Financials{
		subtotal:    subtotal.Round(),
		shippingFee: shippingFee.Round(),
		tax:         tax.Round(),
	}
	f.discount = discount.Round().Min(f.subtotal.Add(f.shippingFee))
	f.totalAmount = f.subtotal.Add(f.shippingFee).Add(f.tax).SubFloor(f.discount)
	return f, nil
}
