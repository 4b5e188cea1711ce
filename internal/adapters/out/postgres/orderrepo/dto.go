// Package orderrepo persists order aggregates: the order row, its line
// items and its status history, each in its own table.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Money columns are numeric(14,2).
type OrderDTO struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Number   string    `gorm:"column:number;type:varchar(32);not null;uniqueIndex"`
	VendorID uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index"`

	CustomerUserID *uuid.UUID `gorm:"column:customer_user_id;type:uuid"`
	GuestName      *string    `gorm:"column:guest_name"`
	GuestEmail     *string    `gorm:"column:guest_email"`
	GuestPhone     *string    `gorm:"column:guest_phone"`

	Shipping AddressDTO        `gorm:"embedded;embeddedPrefix:shipping_"`
	Billing  BillingAddressDTO `gorm:"embedded;embeddedPrefix:billing_"`

	Subtotal          decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null"`
	ShippingFee       decimal.Decimal `gorm:"column:shipping_fee;type:numeric(14,2);not null"`
	Tax               decimal.Decimal `gorm:"column:tax;type:numeric(14,2);not null"`
	RequestedDiscount decimal.Decimal `gorm:"column:requested_discount;type:numeric(14,2);not null"`
	Discount          decimal.Decimal `gorm:"column:discount;type:numeric(14,2);not null"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null;index"`

	FulfillmentStatus string `gorm:"column:fulfillment_status;type:varchar(16);not null;index"`
	PayoutStatus      string `gorm:"column:payout_status;type:varchar(16);not null;index"`

	TrackingCarrier string `gorm:"column:tracking_carrier;not null;default:''"`
	TrackingNumber  string `gorm:"column:tracking_number;not null;default:''"`
	TrackingURL     string `gorm:"column:tracking_url;not null;default:''"`
	TrackingNote    string `gorm:"column:tracking_note;not null;default:''"`

	PayoutDate  *time.Time `gorm:"column:payout_date"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;index"`
	LastUpdated time.Time  `gorm:"column:last_updated;not null"`
	Version     int        `gorm:"column:version;not null"`

	Items   []LineItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Line1      string `gorm:"column:line1;not null"`
	Line2      string `gorm:"column:line2;not null;default:''"`
	City       string `gorm:"column:city;not null"`
	Region     string `gorm:"column:region;not null;default:''"`
	PostalCode string `gorm:"column:postal_code;not null"`
	Country    string `gorm:"column:country;type:char(2);not null"`
}

// BillingAddressDTO is all-null when the order bills to its shipping
// address.
type BillingAddressDTO struct {
	Line1      *string `gorm:"column:line1"`
	Line2      *string `gorm:"column:line2"`
	City       *string `gorm:"column:city"`
	Region     *string `gorm:"column:region"`
	PostalCode *string `gorm:"column:postal_code"`
	Country    *string `gorm:"column:country;type:char(2)"`
}

// LineItemDTO keeps the position of the line so items read back in the
// order they were placed.
type LineItemDTO struct {
	OrderID    uuid.UUID         `gorm:"column:order_id;type:uuid;primaryKey"`
	Position   int               `gorm:"column:position;primaryKey"`
	ProductID  uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	UnitPrice  decimal.Decimal   `gorm:"column:unit_price;type:numeric(14,2);not null"`
	Quantity   int               `gorm:"column:quantity;not null"`
	Attributes map[string]string `gorm:"column:attributes;type:jsonb;serializer:json"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO is one row of the insert-only status ledger.
type HistoryEntryDTO struct {
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	Seq        int       `gorm:"column:seq;primaryKey"`
	Track      string    `gorm:"column:track;type:varchar(16);not null"`
	Status     string    `gorm:"column:status;type:varchar(16);not null"`
	ActorID    string    `gorm:"column:actor_id;not null"`
	ActorRole  string    `gorm:"column:actor_role;type:varchar(16);not null"`
	Note       string    `gorm:"column:note;not null;default:''"`
	Override   bool      `gorm:"column:override;not null;default:false"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}
