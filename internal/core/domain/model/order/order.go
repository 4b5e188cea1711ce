package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Order is the aggregate root of the marketplace order domain. It owns two
// independent status tracks, the ledger that records every move on either
// track, and the financial totals derived from its line items.
//
// Invariants:
//   - TotalAmount is always the exact recomputation from items, shipping,
//     tax and the requested discount
//   - the ledger holds at least the two creation entries and only grows
//   - PayoutDate is set iff payout entered completed and was not reset
//   - exactly one customer variant is present
//   - items are non-empty and frozen once fulfillment leaves pending
//
// Every mutator validates all of its inputs before touching any field, so a
// failed call leaves the order exactly as it was.
type Order struct {
	id                kernel.UUID
	number            string
	vendorID          kernel.UUID
	customer          Customer
	items             []LineItem
	shippingAddress   kernel.Address
	billingAddress    *kernel.Address
	requestedDiscount kernel.Money
	financials        Financials
	fulfillmentStatus FulfillmentStatus
	payoutStatus      PayoutStatus
	tracking          TrackingInfo
	payoutDate        *time.Time
	ledger            Ledger
	createdAt         time.Time
	lastUpdated       time.Time

	// version is the optimistic concurrency stamp of the stored row this
	// order was loaded from. New orders start at 0.
	version int

	events        []StatusChanged
	isConstructed bool
}

// NewOrderParams groups the checkout data an order is created from.
type NewOrderParams struct {
	ID              kernel.UUID
	Number          string
	VendorID        kernel.UUID
	Customer        Customer
	Items           []LineItem
	ShippingAddress kernel.Address
	BillingAddress  *kernel.Address
	ShippingFee     kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	Actor           Actor
	CreatedAt       time.Time
}

// NewOrder creates a pending/pending order, prices it and writes the two
// initial ledger entries.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, kernel.MustMoney("10"), 2, nil)
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:              kernel.NewUUID(),
//	    Number:          "MK-2026-000001",
//	    VendorID:        vendorID,
//	    Customer:        customer,
//	    Items:           []order.LineItem{item},
//	    ShippingAddress: address,
//	    ShippingFee:     kernel.MustMoney("5"),
//	    Actor:           order.SystemActor("checkout"),
//	    CreatedAt:       time.Now(),
//	})
//	// o.Financials().TotalAmount().String() == "25.00"
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		fulfillmentStatus: FulfillmentPending,
		payoutStatus:      PayoutPending,
		requestedDiscount: p.Discount,
		createdAt:         p.CreatedAt.UTC(),
		lastUpdated:       p.CreatedAt.UTC(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setVendor(p.VendorID),
		o.setCustomer(p.Customer),
		o.setAddresses(p.ShippingAddress, p.BillingAddress),
		o.setItems(p.Items),
		p.Actor.Validate(),
	); err != nil {
		return nil, err
	}

	financials, err := ComputeTotals(o.items, p.ShippingFee, p.Tax, p.Discount)
	if err != nil {
		return nil, err
	}
	o.financials = financials

	o.ledger.Append(TrackFulfillment, FulfillmentPending.String(), p.Actor, "", o.createdAt, false)
	o.ledger.Append(TrackPayout, PayoutPending.String(), p.Actor, "", o.createdAt, false)

	o.isConstructed = true
	return o, nil
}

// RestoreOrderParams carries the stored state of an order.
type RestoreOrderParams struct {
	ID                kernel.UUID
	Number            string
	VendorID          kernel.UUID
	Customer          Customer
	Items             []LineItem
	ShippingAddress   kernel.Address
	BillingAddress    *kernel.Address
	ShippingFee       kernel.Money
	Tax               kernel.Money
	RequestedDiscount kernel.Money
	FulfillmentStatus FulfillmentStatus
	PayoutStatus      PayoutStatus
	Tracking          TrackingInfo
	PayoutDate        *time.Time
	History           []HistoryEntry
	CreatedAt         time.Time
	LastUpdated       time.Time
	Version           int
}

// RestoreOrder rebuilds an order read from storage. Totals are recomputed
// from the stored components rather than trusted.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		requestedDiscount: p.RequestedDiscount,
		tracking:          p.Tracking,
		createdAt:         p.CreatedAt.UTC(),
		lastUpdated:       p.LastUpdated.UTC(),
		version:           p.Version,
	}
	if p.PayoutDate != nil {
		d := p.PayoutDate.UTC()
		o.payoutDate = &d
	}

	ledger, ledgerErr := RestoreLedger(p.History)
	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setVendor(p.VendorID),
		o.setCustomer(p.Customer),
		o.setAddresses(p.ShippingAddress, p.BillingAddress),
		o.setItems(p.Items),
		p.FulfillmentStatus.Validate(),
		p.PayoutStatus.Validate(),
		ledgerErr,
	); err != nil {
		return nil, err
	}
	if ledger.Len() == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}

	financials, err := ComputeTotals(o.items, p.ShippingFee, p.Tax, p.RequestedDiscount)
	if err != nil {
		return nil, err
	}

	o.financials = financials
	o.fulfillmentStatus = p.FulfillmentStatus
	o.payoutStatus = p.PayoutStatus
	o.ledger = ledger
	o.isConstructed = true
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) VendorID() kernel.UUID { return o.vendorID }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) Financials() Financials { return o.financials }
func (o *Order) RequestedDiscount() kernel.Money { return o.requestedDiscount }
func (o *Order) FulfillmentStatus() FulfillmentStatus { return o.fulfillmentStatus }
func (o *Order) PayoutStatus() PayoutStatus { return o.payoutStatus }
func (o *Order) Tracking() TrackingInfo { return o.tracking }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) LastUpdated() time.Time { return o.lastUpdated }
func (o *Order) Version() int { return o.version }

// SetVersion records the version under which the order was last stored.
// Only repositories call it, after a successful write.
func (o *Order) SetVersion(v int) {
	o.version = v
}

// Items returns a copy of the line items in order.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// BillingAddress falls back to the shipping address when none was given.
func (o *Order) BillingAddress() kernel.Address {
	if o.billingAddress == nil {
		return o.shippingAddress
	}
	return *o.billingAddress
}

// HasSeparateBillingAddress reports whether a billing address was supplied.
func (o *Order) HasSeparateBillingAddress() bool {
	return o.billingAddress != nil
}

func (o *Order) PayoutDate() *time.Time {
	if o.payoutDate == nil {
		return nil
	}
	d := *o.payoutDate
	return &d
}

// History returns the ledger, oldest first.
func (o *Order) History() []HistoryEntry {
	return o.ledger.Entries()
}

// PullEvents returns the events recorded since the last call and clears them.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

// UpdateFulfillmentStatus moves the order along the fulfillment track.
//
// tracking is merged field by field into the current tracking details and
// is only accepted when target is shipped or delivered. Re-applying the
// current status is legal: it appends nothing to the ledger but still merges
// tracking. The returned bool reports whether the order changed at all.
//
// Fails with an *IllegalTransitionError when target is not reachable, in
// which case nothing is modified.
func (o *Order) UpdateFulfillmentStatus(
	target FulfillmentStatus, tracking *TrackingUpdate, note string, actor Actor, now time.Time,
) (bool, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return false, err
	}
	if err := o.fulfillmentStatus.ValidateTransition(target); err != nil {
		return false, err
	}

	merged := o.tracking
	if tracking != nil && !tracking.IsEmpty() {
		if !target.AllowsTracking() {
			return false, ErrTrackingNotAllowed
		}
		if err := tracking.Validate(); err != nil {
			return false, err
		}
		merged = o.tracking.merge(*tracking)
	}
	trackingChanged := merged != o.tracking

	if target == o.fulfillmentStatus {
		if !trackingChanged {
			return false, nil
		}
		o.tracking = merged
		o.touch(now)
		return true, nil
	}

	from := o.fulfillmentStatus
	o.fulfillmentStatus = target
	o.tracking = merged
	entry := o.ledger.Append(TrackFulfillment, target.String(), actor, strings.TrimSpace(note), now, false)
	o.touch(entry.Timestamp())
	o.record(entry, from.String())
	return true, nil
}

// ValidatePayoutTransition reports whether target is reachable on the payout
// track without changing anything.
func (o *Order) ValidatePayoutTransition(target PayoutStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.payoutStatus.ValidateTransition(target)
}

// UpdatePayoutStatus moves the order along the payout track. Entering
// completed stamps PayoutDate with the entry's timestamp. Re-applying the
// current status is a no-op and returns false.
func (o *Order) UpdatePayoutStatus(target PayoutStatus, actor Actor, note string, now time.Time) (bool, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return false, err
	}
	if err := o.payoutStatus.ValidateTransition(target); err != nil {
		return false, err
	}
	if target == o.payoutStatus {
		return false, nil
	}

	from := o.payoutStatus
	o.payoutStatus = target
	entry := o.ledger.Append(TrackPayout, target.String(), actor, strings.TrimSpace(note), now, false)
	if target == PayoutCompleted {
		stamped := entry.Timestamp()
		o.payoutDate = &stamped
	}
	o.touch(entry.Timestamp())
	o.record(entry, from.String())
	return true, nil
}

// ResetPayout is the administrative correction path. It returns the payout
// track to pending from any other status, clears PayoutDate and appends an
// entry flagged as an override. Only admins may call it, and a reason is
// mandatory.
func (o *Order) ResetPayout(actor Actor, note string, now time.Time) (bool, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return false, err
	}
	if !actor.CanOverridePayout() {
		return false, ErrOverrideNotAuthorized
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return false, errs.NewValueIsRequiredError("note")
	}
	if o.payoutStatus == PayoutPending {
		return false, nil
	}

	from := o.payoutStatus
	o.payoutStatus = PayoutPending
	o.payoutDate = nil
	entry := o.ledger.Append(TrackPayout, PayoutPending.String(), actor, note, now, true)
	o.touch(entry.Timestamp())
	o.record(entry, from.String())
	return true, nil
}

// ReplaceItems swaps the line items of a pending order and reprices it.
func (o *Order) ReplaceItems(items []LineItem, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.fulfillmentStatus != FulfillmentPending {
		return ErrItemsLocked
	}
	if err := validateItems(items); err != nil {
		return err
	}
	financials, err := ComputeTotals(items, o.financials.shippingFee, o.financials.tax, o.requestedDiscount)
	if err != nil {
		return err
	}

	o.items = slices.Clone(items)
	o.financials = financials
	o.touch(now)
	return nil
}

// AdjustFinancials replaces any of shipping fee, tax and discount (nil keeps
// the current value) and reprices the order. The discount given is the
// requested amount; the applied discount is clamped by ComputeTotals.
func (o *Order) AdjustFinancials(shippingFee, tax, discount *kernel.Money, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	nextShipping, nextTax, nextDiscount := o.financials.shippingFee, o.financials.tax, o.requestedDiscount
	if shippingFee != nil {
		nextShipping = *shippingFee
	}
	if tax != nil {
		nextTax = *tax
	}
	if discount != nil {
		nextDiscount = *discount
	}

	financials, err := ComputeTotals(o.items, nextShipping, nextTax, nextDiscount)
	if err != nil {
		return err
	}

	o.requestedDiscount = nextDiscount
	o.financials = financials
	o.touch(now)
	return nil
}

// RecomputeFinancials reprices the order from its current components. It
// does not write to the ledger.
func (o *Order) RecomputeFinancials() error {
	if err := o.Validate(); err != nil {
		return err
	}
	financials, err := ComputeTotals(o.items, o.financials.shippingFee, o.financials.tax, o.requestedDiscount)
	if err != nil {
		return err
	}
	o.financials = financials
	return nil
}

// touch refreshes lastUpdated without letting it move backwards.
func (o *Order) touch(now time.Time) {
	now = now.UTC()
	if now.After(o.lastUpdated) {
		o.lastUpdated = now
	}
}

func (o *Order) record(entry HistoryEntry, from string) {
	o.events = append(o.events, StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		VendorID:    o.vendorID,
		Seq:         entry.Seq(),
		Track:       entry.Track(),
		From:        from,
		To:          entry.Status(),
		ActorID:     entry.Actor().ID(),
		Note:        entry.Note(),
		Override:    entry.IsOverride(),
		OccurredAt:  entry.Timestamp(),
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setVendor(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendor", err)
	}
	o.vendorID = vendorID
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = c
	return nil
}

func (o *Order) setAddresses(shipping kernel.Address, billing *kernel.Address) error {
	if err := shipping.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipping address", err)
	}
	if billing != nil {
		if err := billing.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("billing address", err)
		}
		b := *billing
		o.billingAddress = &b
	}
	o.shippingAddress = shipping
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = slices.Clone(items)
	return nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewInvalidAmountErrorWithCause("items", "unconstructed line item", err)
		}
	}
	return nil
}
