package queries

import (
	"context"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

type GetOrderQueryHandler struct {
	orders  OrderReader
	vendors ports.VendorDirectory
}

func NewGetOrderQueryHandler(orders OrderReader, vendors ports.VendorDirectory) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, vendors: vendors}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	names, err := h.vendors.DisplayNames(ctx, []kernel.UUID{o.VendorID()})
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:                 o.ID(),
		Number:             o.Number(),
		VendorID:           o.VendorID(),
		VendorName:         names[o.VendorID()],
		Customer:           o.Customer(),
		Items:              o.Items(),
		ShippingAddress:    o.ShippingAddress(),
		BillingAddress:     o.BillingAddress(),
		Financials:         o.Financials(),
		FulfillmentStatus:  o.FulfillmentStatus(),
		PayoutStatus:       o.PayoutStatus(),
		Tracking:           o.Tracking(),
		PayoutDate:         o.PayoutDate(),
		History:            o.History(),
		CreatedAt:          o.CreatedAt(),
		LastUpdated:        o.LastUpdated(),
		Version:            o.Version(),
		AllowedFulfillment: nextOnly(order.TrackFulfillment, o.FulfillmentStatus().String()),
		AllowedPayout:      nextOnly(order.TrackPayout, o.PayoutStatus().String()),
	}, nil
}

func nextOnly(track order.Track, current string) []string {
	return slices.DeleteFunc(order.AllowedTransitions(track, current), func(s string) bool {
		return s == current
	})
}
