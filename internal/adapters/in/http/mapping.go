package http

import (
	"errors"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

func joinErrors(errList ...error) error {
	return errors.Join(errList...)
}

func orderIDFrom(id uuid.UUID) (kernel.UUID, error) {
	return uuidFrom("id", id)
}

func uuidFrom(param string, id uuid.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromValue(id)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return u, nil
}

func optionalMoney(param string, raw *string) (*kernel.Money, error) {
	if raw == nil {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(*raw)
	if err != nil {
		return nil, errs.NewInvalidAmountErrorWithCause(param, *raw, err)
	}
	return &m, nil
}

func moneyOrZero(param string, raw *string) (kernel.Money, error) {
	m, err := optionalMoney(param, raw)
	if err != nil || m == nil {
		return kernel.ZeroMoney(), err
	}
	return *m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrIfSet(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func listOrdersQueryFrom(p servers.ListOrdersParams) (queries.ListOrdersQuery, error) {
	var filter queries.ListOrdersFilter
	var statusErr, payoutErr, vendorErr, minErr, maxErr error

	if p.Status != nil {
		var s order.FulfillmentStatus
		s, statusErr = order.ParseFulfillmentStatus(string(*p.Status))
		filter.FulfillmentStatus = &s
	}
	if p.PayoutStatus != nil {
		var s order.PayoutStatus
		s, payoutErr = order.ParsePayoutStatus(string(*p.PayoutStatus))
		filter.PayoutStatus = &s
	}
	if p.Vendor != nil {
		var v kernel.UUID
		v, vendorErr = uuidFrom("vendor", *p.Vendor)
		filter.VendorID = &v
	}
	filter.CreatedFrom = p.StartDate
	filter.CreatedTo = p.EndDate
	filter.MinTotal, minErr = optionalMoney("minTotal", p.MinTotal)
	filter.MaxTotal, maxErr = optionalMoney("maxTotal", p.MaxTotal)

	sortOrder, sortErr := queries.ParseOrderSort(deref(p.Sort))
	if err := errors.Join(statusErr, payoutErr, vendorErr, minErr, maxErr, sortErr); err != nil {
		return queries.ListOrdersQuery{}, err
	}

	page, pageSize := 0, 0
	if p.Page != nil {
		page = *p.Page
	}
	if p.PageSize != nil {
		pageSize = *p.PageSize
	}
	return queries.NewListOrdersQuery(filter, page, pageSize, sortOrder)
}

func createOrderParamsFrom(body servers.NewOrder, actor order.Actor) (commands.CreateOrderParams, error) {
	vendorID, vendorErr := uuidFrom("vendorId", body.VendorId)
	customer, customerErr := customerFrom(body.Customer)
	shipping, shippingErr := addressFrom(body.ShippingAddress)
	var billing *kernel.Address
	var billingErr error
	if body.BillingAddress != nil {
		var b kernel.Address
		b, billingErr = addressFrom(*body.BillingAddress)
		billing = &b
	}
	shippingFee, feeErr := moneyOrZero("shippingFee", body.ShippingFee)
	tax, taxErr := moneyOrZero("tax", body.Tax)
	discount, discountErr := moneyOrZero("discount", body.Discount)

	items := make([]order.LineItem, 0, len(body.Items))
	itemErrs := make([]error, 0)
	for _, raw := range body.Items {
		item, err := lineItemFrom(raw)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}

	err := errors.Join(vendorErr, customerErr, shippingErr, billingErr, feeErr, taxErr, discountErr, errors.Join(itemErrs...))
	if err != nil {
		return commands.CreateOrderParams{}, err
	}

	return commands.CreateOrderParams{
		OrderID:         kernel.NewUUID(),
		VendorID:        vendorID,
		Customer:        customer,
		Items:           items,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		ShippingFee:     shippingFee,
		Tax:             tax,
		Discount:        discount,
		Actor:           actor,
	}, nil
}

func customerFrom(c servers.Customer) (order.Customer, error) {
	switch {
	case c.UserId != nil && c.Guest != nil:
		return order.Customer{}, errs.NewValueIsInvalidErrorWithCause(
			"customer", errors.New("either userId or guest, not both"))
	case c.UserId != nil:
		userID, err := uuidFrom("customer.userId", *c.UserId)
		if err != nil {
			return order.Customer{}, err
		}
		return order.NewRegisteredCustomer(userID)
	case c.Guest != nil:
		return order.NewGuestCustomer(c.Guest.Name, c.Guest.Email, deref(c.Guest.Phone))
	default:
		return order.Customer{}, errs.NewValueIsRequiredError("customer")
	}
}

func addressFrom(a servers.Address) (kernel.Address, error) {
	return kernel.NewAddress(a.Line1, deref(a.Line2), a.City, deref(a.Region), a.PostalCode, a.Country)
}

func lineItemFrom(raw servers.NewLineItem) (order.LineItem, error) {
	productID, err := uuidFrom("productId", raw.ProductId)
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.MoneyFromString(raw.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}
	var attributes map[string]string
	if raw.Attributes != nil {
		attributes = *raw.Attributes
	}
	return order.NewLineItem(productID, price, raw.Quantity, attributes)
}

func trackingUpdateFrom(t *servers.TrackingInfo) *order.TrackingUpdate {
	if t == nil {
		return nil
	}
	return &order.TrackingUpdate{
		Carrier: t.Carrier,
		Number:  t.Number,
		URL:     t.Url,
		Note:    t.Note,
	}
}

func toOrderPage(resp queries.ListOrdersQueryResponse) servers.OrderPage {
	page := servers.OrderPage{
		Orders:     make([]servers.OrderSummary, 0, len(resp.Orders)),
		TotalCount: resp.TotalCount,
		Page:       resp.Page,
		PageSize:   resp.PageSize,
	}
	for _, o := range resp.Orders {
		summary := servers.OrderSummary{
			Id:                o.ID.Value(),
			OrderNumber:       o.Number,
			VendorId:          o.VendorID.Value(),
			VendorName:        ptrIfSet(o.VendorName),
			GuestName:         ptrIfSet(o.GuestName),
			FulfillmentStatus: servers.FulfillmentStatus(o.FulfillmentStatus),
			PayoutStatus:      servers.PayoutStatus(o.PayoutStatus),
			TotalAmount:       o.TotalAmount.String(),
			ItemCount:         o.ItemCount,
			CreatedAt:         o.CreatedAt,
			LastUpdated:       o.LastUpdated,
		}
		if o.CustomerUserID != nil {
			userID := o.CustomerUserID.Value()
			summary.CustomerUserId = &userID
		}
		page.Orders = append(page.Orders, summary)
	}
	return page
}

func toOrderDetail(resp queries.GetOrderQueryResponse) servers.OrderDetail {
	detail := servers.OrderDetail{
		Id:                resp.ID.Value(),
		OrderNumber:       resp.Number,
		VendorId:          resp.VendorID.Value(),
		VendorName:        ptrIfSet(resp.VendorName),
		Customer:          toCustomer(resp.Customer),
		Items:             make([]servers.LineItem, 0, len(resp.Items)),
		ShippingAddress:   toAddress(resp.ShippingAddress),
		BillingAddress:    toAddress(resp.BillingAddress),
		Financials:        toFinancials(resp.Financials),
		FulfillmentStatus: servers.FulfillmentStatus(resp.FulfillmentStatus.String()),
		PayoutStatus:      servers.PayoutStatus(resp.PayoutStatus.String()),
		PayoutDate:        resp.PayoutDate,
		StatusHistory:     make([]servers.HistoryEntry, 0, len(resp.History)),
		AllowedTransitions: servers.AllowedTransitions{
			Fulfillment: nonNil(resp.AllowedFulfillment),
			Payout:      nonNil(resp.AllowedPayout),
		},
		CreatedAt:   resp.CreatedAt,
		LastUpdated: resp.LastUpdated,
		Version:     resp.Version,
	}

	for _, li := range resp.Items {
		item := servers.LineItem{
			ProductId: li.ProductID().Value(),
			UnitPrice: li.UnitPrice().String(),
			Quantity:  li.Quantity(),
			LineTotal: li.LineTotal().String(),
		}
		if attrs := li.Attributes(); len(attrs) > 0 {
			item.Attributes = &attrs
		}
		detail.Items = append(detail.Items, item)
	}

	if !resp.Tracking.IsZero() {
		detail.TrackingInfo = &servers.TrackingInfo{
			Carrier: ptrIfSet(resp.Tracking.Carrier()),
			Number:  ptrIfSet(resp.Tracking.Number()),
			Url:     ptrIfSet(resp.Tracking.URL()),
			Note:    ptrIfSet(resp.Tracking.Note()),
		}
	}

	for _, e := range resp.History {
		detail.StatusHistory = append(detail.StatusHistory, servers.HistoryEntry{
			Seq:       e.Seq(),
			Track:     e.Track().String(),
			Status:    e.Status(),
			ActorId:   e.Actor().ID(),
			ActorRole: e.Actor().Role().String(),
			Note:      ptrIfSet(e.Note()),
			Override:  e.IsOverride(),
			Timestamp: e.Timestamp(),
		})
	}

	return detail
}

func toCustomer(c order.Customer) servers.Customer {
	if userID := c.UserID(); userID != nil {
		id := userID.Value()
		return servers.Customer{UserId: &id}
	}
	g := c.Guest()
	if g == nil {
		return servers.Customer{}
	}
	return servers.Customer{Guest: &servers.Guest{
		Name:  g.Name(),
		Email: g.Email(),
		Phone: ptrIfSet(g.Phone()),
	}}
}

func toAddress(a kernel.Address) servers.Address {
	return servers.Address{
		Line1:      a.Line1(),
		Line2:      ptrIfSet(a.Line2()),
		City:       a.City(),
		Region:     ptrIfSet(a.Region()),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

func toFinancials(f order.Financials) servers.Financials {
	return servers.Financials{
		Subtotal:    f.Subtotal().String(),
		ShippingFee: f.ShippingFee().String(),
		Tax:         f.Tax().String(),
		Discount:    f.Discount().String(),
		TotalAmount: f.TotalAmount().String(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
