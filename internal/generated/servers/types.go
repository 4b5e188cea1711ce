// Package servers holds the HTTP contract of the service: the embedded
// OpenAPI document, the request and response types it describes and the
// echo server interface with its parameter-binding wrapper. Types follow
// openapi.yml one to one; the package tests fail when the two drift apart.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Money is a decimal amount with two fraction digits, e.g. "25.00".
type Money = string

type FulfillmentStatus string

const (
	FulfillmentStatusPending   FulfillmentStatus = "pending"
	FulfillmentStatusConfirmed FulfillmentStatus = "confirmed"
	FulfillmentStatusShipped   FulfillmentStatus = "shipped"
	FulfillmentStatusDelivered FulfillmentStatus = "delivered"
	FulfillmentStatusCancelled FulfillmentStatus = "cancelled"
	FulfillmentStatusRefunded  FulfillmentStatus = "refunded"
)

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

type Error struct {
	Code               int       `json:"code"`
	Message            string    `json:"message"`
	Retryable          *bool     `json:"retryable,omitempty"`
	AllowedTransitions *[]string `json:"allowedTransitions,omitempty"`
}

type Address struct {
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	Region     *string `json:"region,omitempty"`
	PostalCode string  `json:"postalCode" validate:"required"`
	Country    string  `json:"country" validate:"required,len=2"`
}

type Guest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty"`
}

type Customer struct {
	UserId *openapi_types.UUID `json:"userId,omitempty" validate:"required_without=Guest,excluded_with=Guest"`
	Guest  *Guest              `json:"guest,omitempty" validate:"required_without=UserId"`
}

type NewLineItem struct {
	ProductId  openapi_types.UUID `json:"productId" validate:"required"`
	UnitPrice  Money              `json:"unitPrice" validate:"required,numeric"`
	Quantity   int                `json:"quantity" validate:"gte=1"`
	Attributes *map[string]string `json:"attributes,omitempty"`
}

type LineItem struct {
	ProductId  openapi_types.UUID `json:"productId"`
	UnitPrice  Money              `json:"unitPrice"`
	Quantity   int                `json:"quantity"`
	LineTotal  Money              `json:"lineTotal"`
	Attributes *map[string]string `json:"attributes,omitempty"`
}

type NewOrder struct {
	VendorId        openapi_types.UUID `json:"vendorId" validate:"required"`
	Customer        Customer           `json:"customer"`
	Items           []NewLineItem      `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address            `json:"shippingAddress"`
	BillingAddress  *Address           `json:"billingAddress,omitempty"`
	ShippingFee     *Money             `json:"shippingFee,omitempty" validate:"omitempty,numeric"`
	Tax             *Money             `json:"tax,omitempty" validate:"omitempty,numeric"`
	Discount        *Money             `json:"discount,omitempty" validate:"omitempty,numeric"`
}

type Financials struct {
	Subtotal    Money `json:"subtotal"`
	ShippingFee Money `json:"shippingFee"`
	Tax         Money `json:"tax"`
	Discount    Money `json:"discount"`
	TotalAmount Money `json:"totalAmount"`
}

type TrackingInfo struct {
	Carrier *string `json:"carrier,omitempty"`
	Number  *string `json:"number,omitempty"`
	Url     *string `json:"url,omitempty" validate:"omitempty,url"`
	Note    *string `json:"note,omitempty"`
}

type HistoryEntry struct {
	Seq       int       `json:"seq"`
	Track     string    `json:"track"`
	Status    string    `json:"status"`
	ActorId   string    `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Note      *string   `json:"note,omitempty"`
	Override  bool      `json:"override"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderSummary struct {
	Id                openapi_types.UUID  `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	VendorId          openapi_types.UUID  `json:"vendorId"`
	VendorName        *string             `json:"vendorName,omitempty"`
	CustomerUserId    *openapi_types.UUID `json:"customerUserId,omitempty"`
	GuestName         *string             `json:"guestName,omitempty"`
	FulfillmentStatus FulfillmentStatus   `json:"fulfillmentStatus"`
	PayoutStatus      PayoutStatus        `json:"payoutStatus"`
	TotalAmount       Money               `json:"totalAmount"`
	ItemCount         int                 `json:"itemCount"`
	CreatedAt         time.Time           `json:"createdAt"`
	LastUpdated       time.Time           `json:"lastUpdated"`
}

type OrderPage struct {
	Orders     []OrderSummary `json:"orders"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
}

type AllowedTransitions struct {
	Fulfillment []string `json:"fulfillment"`
	Payout      []string `json:"payout"`
}

type OrderDetail struct {
	Id                 openapi_types.UUID `json:"id"`
	OrderNumber        string             `json:"orderNumber"`
	VendorId           openapi_types.UUID `json:"vendorId"`
	VendorName         *string            `json:"vendorName,omitempty"`
	Customer           Customer           `json:"customer"`
	Items              []LineItem         `json:"items"`
	ShippingAddress    Address            `json:"shippingAddress"`
	BillingAddress     Address            `json:"billingAddress"`
	Financials         Financials         `json:"financials"`
	FulfillmentStatus  FulfillmentStatus  `json:"fulfillmentStatus"`
	PayoutStatus       PayoutStatus       `json:"payoutStatus"`
	TrackingInfo       *TrackingInfo      `json:"trackingInfo,omitempty"`
	PayoutDate         *time.Time         `json:"payoutDate,omitempty"`
	StatusHistory      []HistoryEntry     `json:"statusHistory"`
	AllowedTransitions AllowedTransitions `json:"allowedTransitions"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdated        time.Time          `json:"lastUpdated"`
	Version            int                `json:"version"`
}

type UpdateFulfillmentStatusRequest struct {
	Status       FulfillmentStatus `json:"status" validate:"required"`
	TrackingInfo *TrackingInfo     `json:"trackingInfo,omitempty"`
	Note         *string           `json:"note,omitempty"`
}

type UpdatePayoutStatusRequest struct {
	PayoutStatus PayoutStatus `json:"payoutStatus" validate:"required"`
	Note         *string      `json:"note,omitempty"`
}

type ResetPayoutRequest struct {
	Note string `json:"note" validate:"required"`
}

type AdjustFinancialsRequest struct {
	ShippingFee *Money `json:"shippingFee,omitempty" validate:"omitempty,numeric"`
	Tax         *Money `json:"tax,omitempty" validate:"omitempty,numeric"`
	Discount    *Money `json:"discount,omitempty" validate:"omitempty,numeric"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status       *FulfillmentStatus  `form:"status,omitempty" json:"status,omitempty"`
	PayoutStatus *PayoutStatus       `form:"payoutStatus,omitempty" json:"payoutStatus,omitempty"`
	Vendor       *openapi_types.UUID `form:"vendor,omitempty" json:"vendor,omitempty"`
	StartDate    *time.Time          `form:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time          `form:"endDate,omitempty" json:"endDate,omitempty"`
	MinTotal     *Money              `form:"minTotal,omitempty" json:"minTotal,omitempty"`
	MaxTotal     *Money              `form:"maxTotal,omitempty" json:"maxTotal,omitempty"`
	Sort         *string             `form:"sort,omitempty" json:"sort,omitempty"`
	Page         *int                `form:"page,omitempty" json:"page,omitempty"`
	PageSize     *int                `form:"pageSize,omitempty" json:"pageSize,omitempty"`
}
