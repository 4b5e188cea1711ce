package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/pgerrs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through orders straight from the orders table
// and enriches each row with the vendor display name.
type ListOrdersQueryHandler struct {
	db      *gorm.DB
	vendors ports.VendorDirectory
}

func NewListOrdersQueryHandler(db *gorm.DB, vendors ports.VendorDirectory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, vendors: vendors}
}

type orderSummaryRow struct {
	ID                uuid.UUID
	Number            string
	VendorID          uuid.UUID
	CustomerUserID    *uuid.UUID
	GuestName         *string
	FulfillmentStatus string
	PayoutStatus      string
	TotalAmount       decimal.Decimal
	ItemCount         int
	CreatedAt         time.Time
	LastUpdated       time.Time
}

// Handle counts the matching orders and loads the requested page. A page
// past the end is returned empty, with the real total.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	resp := ListOrdersQueryResponse{
		Orders:   make([]OrderSummary, 0),
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	filtered := func(tx *gorm.DB) *gorm.DB {
		return applyFilter(tx, query.Filter())
	}

	if err := h.db.WithContext(ctx).Table("orders").Scopes(filtered).Count(&resp.TotalCount).Error; err != nil {
		return ListOrdersQueryResponse{}, pgerrs.Translate(err, "orders", "count")
	}
	offset, ok := query.offset()
	if resp.TotalCount == 0 || !ok || int64(offset) >= resp.TotalCount {
		return resp, nil
	}

	var rows []orderSummaryRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id, orders.number, orders.vendor_id, orders.customer_user_id, orders.guest_name,
			orders.fulfillment_status, orders.payout_status, orders.total_amount,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = orders.id) AS item_count,
			orders.created_at, orders.last_updated`).
		Scopes(filtered).
		Order(orderClause(query.Sort())).
		Limit(query.PageSize()).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return ListOrdersQueryResponse{}, pgerrs.Translate(err, "orders", "list")
	}

	vendorIDs := make([]kernel.UUID, 0, len(rows))
	for _, row := range rows {
		summary, mapErr := row.toSummary()
		if mapErr != nil {
			return ListOrdersQueryResponse{}, mapErr
		}
		resp.Orders = append(resp.Orders, summary)
		vendorIDs = append(vendorIDs, summary.VendorID)
	}

	names, err := h.vendors.DisplayNames(ctx, vendorIDs)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	for i := range resp.Orders {
		resp.Orders[i].VendorName = names[resp.Orders[i].VendorID]
	}

	return resp, nil
}

func applyFilter(tx *gorm.DB, f ListOrdersFilter) *gorm.DB {
	if f.FulfillmentStatus != nil {
		tx = tx.Where("orders.fulfillment_status = ?", f.FulfillmentStatus.String())
	}
	if f.PayoutStatus != nil {
		tx = tx.Where("orders.payout_status = ?", f.PayoutStatus.String())
	}
	if f.VendorID != nil {
		tx = tx.Where("orders.vendor_id = ?", f.VendorID.Value())
	}
	if f.CreatedFrom != nil {
		tx = tx.Where("orders.created_at >= ?", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		tx = tx.Where("orders.created_at <= ?", f.CreatedTo.UTC())
	}
	if f.MinTotal != nil {
		tx = tx.Where("orders.total_amount >= ?", f.MinTotal.Amount())
	}
	if f.MaxTotal != nil {
		tx = tx.Where("orders.total_amount <= ?", f.MaxTotal.Amount())
	}
	return tx
}

func orderClause(sort OrderSort) string {
	switch sort {
	case SortOldest:
		return "orders.created_at ASC, orders.id ASC"
	case SortTotalHigh:
		return "orders.total_amount DESC, orders.id ASC"
	case SortTotalLow:
		return "orders.total_amount ASC, orders.id ASC"
	default:
		return "orders.created_at DESC, orders.id ASC"
	}
}

func (r orderSummaryRow) toSummary() (OrderSummary, error) {
	id, err := kernel.UUIDFromValue(r.ID)
	if err != nil {
		return OrderSummary{}, err
	}
	vendorID, err := kernel.UUIDFromValue(r.VendorID)
	if err != nil {
		return OrderSummary{}, err
	}
	total, err := kernel.NewMoney(r.TotalAmount)
	if err != nil {
		return OrderSummary{}, err
	}

	summary := OrderSummary{
		ID:                id,
		Number:            r.Number,
		VendorID:          vendorID,
		FulfillmentStatus: r.FulfillmentStatus,
		PayoutStatus:      r.PayoutStatus,
		TotalAmount:       total,
		ItemCount:         r.ItemCount,
		CreatedAt:         r.CreatedAt.UTC(),
		LastUpdated:       r.LastUpdated.UTC(),
	}
	if r.CustomerUserID != nil {
		userID, userErr := kernel.UUIDFromValue(*r.CustomerUserID)
		if userErr != nil {
			return OrderSummary{}, userErr
		}
		summary.CustomerUserID = &userID
	}
	if r.GuestName != nil {
		summary.GuestName = *r.GuestName
	}
	return summary, nil
}
