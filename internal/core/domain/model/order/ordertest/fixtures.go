// Package ordertest builds valid orders for tests across the module.
package ordertest

import (
	"fmt"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// CreatedAt is the creation time used by New unless overridden.
var CreatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// Option tweaks the parameters New passes to order.NewOrder.
type Option func(*order.NewOrderParams)

func WithVendor(id kernel.UUID) Option {
	return func(p *order.NewOrderParams) { p.VendorID = id }
}

func WithNumber(n string) Option {
	return func(p *order.NewOrderParams) { p.Number = n }
}

func WithCreatedAt(at time.Time) Option {
	return func(p *order.NewOrderParams) { p.CreatedAt = at }
}

// WithItem replaces the default line items by a single line.
func WithItem(price string, qty int) Option {
	return func(p *order.NewOrderParams) {
		p.Items = []order.LineItem{Item(price, qty)}
	}
}

func WithFees(shipping, tax, discount string) Option {
	return func(p *order.NewOrderParams) {
		p.ShippingFee = kernel.MustMoney(shipping)
		p.Tax = kernel.MustMoney(tax)
		p.Discount = kernel.MustMoney(discount)
	}
}

func Item(price string, qty int) order.LineItem {
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.MustMoney(price), qty, map[string]string{"size": "M"})
	if err != nil {
		panic(err)
	}
	return item
}

func Address(t testing.TB) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("1 Market St", "Suite 5", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	return a
}

func Guest(t testing.TB) order.Customer {
	t.Helper()
	c, err := order.NewGuestCustomer("Ada Lovelace", "ada@example.com", "+15550100")
	require.NoError(t, err)
	return c
}

func Staff(t testing.TB, id string) order.Actor {
	t.Helper()
	a, err := order.NewActor(id, order.RoleStaff)
	require.NoError(t, err)
	return a
}

func Admin(t testing.TB, id string) order.Actor {
	t.Helper()
	a, err := order.NewActor(id, order.RoleAdmin)
	require.NoError(t, err)
	return a
}

// New returns the order of scenario A: two units at 10.00 plus 5.00
// shipping, for a total of 25.00.
func New(t testing.TB, opts ...Option) *order.Order {
	t.Helper()
	p := order.NewOrderParams{
		ID:              kernel.NewUUID(),
		Number:          "MK-2026-000001",
		VendorID:        kernel.NewUUID(),
		Customer:        Guest(t),
		Items:           []order.LineItem{Item("10", 2)},
		ShippingAddress: Address(t),
		ShippingFee:     kernel.MustMoney("5"),
		Actor:           order.SystemActor("checkout"),
		CreatedAt:       CreatedAt,
	}
	for _, opt := range opts {
		opt(&p)
	}
	o, err := order.NewOrder(p)
	require.NoError(t, err)
	return o
}

// Shipped returns an order already moved to shipped by a staff member.
func Shipped(t testing.TB, opts ...Option) *order.Order {
	t.Helper()
	o := New(t, opts...)
	staff := Staff(t, "staff1")
	_, err := o.UpdateFulfillmentStatus(order.FulfillmentConfirmed, nil, "", staff, CreatedAt.Add(time.Hour))
	require.NoError(t, err)
	_, err = o.UpdateFulfillmentStatus(order.FulfillmentShipped, nil, "", staff, CreatedAt.Add(2*time.Hour))
	require.NoError(t, err)
	o.PullEvents()
	return o
}

// InPayout returns an order whose payout track has been walked to status.
func InPayout(t testing.TB, status order.PayoutStatus, opts ...Option) *order.Order {
	t.Helper()
	o := New(t, opts...)
	path := map[order.PayoutStatus][]order.PayoutStatus{
		order.PayoutPending:    nil,
		order.PayoutProcessing: {order.PayoutProcessing},
		order.PayoutFailed:     {order.PayoutProcessing, order.PayoutFailed},
		order.PayoutCompleted:  {order.PayoutProcessing, order.PayoutCompleted},
	}[status]
	at := o.CreatedAt()
	for _, s := range path {
		at = at.Add(time.Hour)
		_, err := o.UpdatePayoutStatus(s, Staff(t, "finance1"), "", at)
		require.NoError(t, err)
	}
	o.PullEvents()
	return o
}

// Number renders the n-th order number of 2026.
func Number(n int) string {
	return fmt.Sprintf("MK-2026-%06d", n)
}
