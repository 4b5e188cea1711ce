package orderrepo

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// fromDomain converts an order aggregate to its rows. Line items and history
// are returned with the order DTO.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Value()
	f := o.Financials()

	dto := OrderDTO{
		ID:                id,
		Number:            o.Number(),
		VendorID:          o.VendorID().Value(),
		Shipping:          addressFromDomain(o.ShippingAddress()),
		Subtotal:          f.Subtotal().Amount(),
		ShippingFee:       f.ShippingFee().Amount(),
		Tax:               f.Tax().Amount(),
		RequestedDiscount: o.RequestedDiscount().Amount(),
		Discount:          f.Discount().Amount(),
		TotalAmount:       f.TotalAmount().Amount(),
		FulfillmentStatus: o.FulfillmentStatus().String(),
		PayoutStatus:      o.PayoutStatus().String(),
		TrackingCarrier:   o.Tracking().Carrier(),
		TrackingNumber:    o.Tracking().Number(),
		TrackingURL:       o.Tracking().URL(),
		TrackingNote:      o.Tracking().Note(),
		PayoutDate:        o.PayoutDate(),
		CreatedAt:         o.CreatedAt(),
		LastUpdated:       o.LastUpdated(),
		Version:           o.Version(),
	}

	if o.HasSeparateBillingAddress() {
		b := o.BillingAddress()
		line1, line2, city, region, postal, country := b.Line1(), b.Line2(), b.City(), b.Region(), b.PostalCode(), b.Country()
		dto.Billing = BillingAddressDTO{
			Line1:      &line1,
			Line2:      &line2,
			City:       &city,
			Region:     &region,
			PostalCode: &postal,
			Country:    &country,
		}
	}

	c := o.Customer()
	if userID := c.UserID(); userID != nil {
		raw := userID.Value()
		dto.CustomerUserID = &raw
	}
	if guest := c.Guest(); guest != nil {
		name, email, phone := guest.Name(), guest.Email(), guest.Phone()
		dto.GuestName, dto.GuestEmail, dto.GuestPhone = &name, &email, &phone
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, LineItemDTO{
			OrderID:    id,
			Position:   i + 1,
			ProductID:  item.ProductID().Value(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
			Attributes: item.Attributes(),
		})
	}

	for _, entry := range o.History() {
		dto.History = append(dto.History, HistoryEntryDTO{
			OrderID:    id,
			Seq:        entry.Seq(),
			Track:      entry.Track().String(),
			Status:     entry.Status(),
			ActorID:    entry.Actor().ID(),
			ActorRole:  entry.Actor().Role().String(),
			Note:       entry.Note(),
			Override:   entry.IsOverride(),
			RecordedAt: entry.Timestamp(),
		})
	}

	return dto
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Line1:      a.Line1(),
		Line2:      a.Line2(),
		City:       a.City(),
		Region:     a.Region(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

// toDomain rebuilds the aggregate. Items and History must be loaded and
// sorted by position and seq.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := kernel.UUIDFromValue(dto.ID)
	vendorID, vendorErr := kernel.UUIDFromValue(dto.VendorID)
	customer, customerErr := customerToDomain(dto)
	shipping, shippingErr := addressToDomain(dto.Shipping)
	fulfillment, fulfillmentErr := order.ParseFulfillmentStatus(dto.FulfillmentStatus)
	payout, payoutErr := order.ParsePayoutStatus(dto.PayoutStatus)
	shippingFee, feeErr := kernel.NewMoney(dto.ShippingFee)
	tax, taxErr := kernel.NewMoney(dto.Tax)
	discount, discountErr := kernel.NewMoney(dto.RequestedDiscount)
	if err := errors.Join(
		idErr, vendorErr, customerErr, shippingErr, fulfillmentErr, payoutErr, feeErr, taxErr, discountErr,
	); err != nil {
		return nil, err
	}

	var billing *kernel.Address
	if dto.Billing.Line1 != nil {
		b, err := kernel.NewAddress(
			deref(dto.Billing.Line1), deref(dto.Billing.Line2), deref(dto.Billing.City),
			deref(dto.Billing.Region), deref(dto.Billing.PostalCode), deref(dto.Billing.Country),
		)
		if err != nil {
			return nil, err
		}
		billing = &b
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, err := itemToDomain(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, row := range dto.History {
		entry, err := historyToDomain(row)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		Number:            dto.Number,
		VendorID:          vendorID,
		Customer:          customer,
		Items:             items,
		ShippingAddress:   shipping,
		BillingAddress:    billing,
		ShippingFee:       shippingFee,
		Tax:               tax,
		RequestedDiscount: discount,
		FulfillmentStatus: fulfillment,
		PayoutStatus:      payout,
		Tracking: order.RestoreTrackingInfo(
			dto.TrackingCarrier, dto.TrackingNumber, dto.TrackingURL, dto.TrackingNote,
		),
		PayoutDate:  dto.PayoutDate,
		History:     history,
		CreatedAt:   dto.CreatedAt,
		LastUpdated: dto.LastUpdated,
		Version:     dto.Version,
	})
}

func customerToDomain(dto OrderDTO) (order.Customer, error) {
	if dto.CustomerUserID != nil {
		userID, err := kernel.UUIDFromValue(*dto.CustomerUserID)
		if err != nil {
			return order.Customer{}, err
		}
		return order.NewRegisteredCustomer(userID)
	}
	return order.NewGuestCustomer(deref(dto.GuestName), deref(dto.GuestEmail), deref(dto.GuestPhone))
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Line1, dto.Line2, dto.City, dto.Region, dto.PostalCode, dto.Country)
}

func itemToDomain(dto LineItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromValue(dto.ProductID)
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(productID, price, dto.Quantity, dto.Attributes)
}

func historyToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	track, err := order.ParseTrack(dto.Track)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	role, err := order.ParseRole(dto.ActorRole)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	actor, err := order.NewActor(dto.ActorID, role)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	return order.RestoreHistoryEntry(dto.Seq, track, dto.Status, actor, dto.Note, dto.RecordedAt, dto.Override)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
