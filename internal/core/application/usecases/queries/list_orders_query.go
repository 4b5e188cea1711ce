// Package queries contains read operations over orders.
// Queries never mutate state and read from the plain database handle,
// outside of any unit of work.
package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderSort selects the ordering of a listing. Every ordering is tie-broken
// by order id so pages are stable.
type OrderSort int

const (
	SortNewest OrderSort = iota
	SortOldest
	SortTotalHigh
	SortTotalLow
)

func getOrderSortStrings() map[OrderSort]string {
	return map[OrderSort]string{
		SortNewest:    "newest",
		SortOldest:    "oldest",
		SortTotalHigh: "total-high",
		SortTotalLow:  "total-low",
	}
}

// ParseOrderSort accepts the wire names; an empty string selects newest.
func ParseOrderSort(s string) (OrderSort, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return SortNewest, nil
	}
	for sort, name := range getOrderSortStrings() {
		if name == needle {
			return sort, nil
		}
	}
	return SortNewest, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a known sort order", s))
}

func (s OrderSort) String() string {
	return getOrderSortStrings()[s]
}

// ListOrdersFilter narrows a listing. Nil fields do not filter; set fields
// are AND-combined. Date bounds are inclusive.
type ListOrdersFilter struct {
	FulfillmentStatus *order.FulfillmentStatus
	PayoutStatus      *order.PayoutStatus
	VendorID          *kernel.UUID
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	MinTotal          *kernel.Money
	MaxTotal          *kernel.Money
}

func (f ListOrdersFilter) validate() error {
	var fulfillmentErr, payoutErr, vendorErr, dateErr, totalErr error
	if f.FulfillmentStatus != nil {
		fulfillmentErr = f.FulfillmentStatus.Validate()
	}
	if f.PayoutStatus != nil {
		payoutErr = f.PayoutStatus.Validate()
	}
	if f.VendorID != nil {
		vendorErr = f.VendorID.Validate()
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		dateErr = errs.NewValueIsInvalidErrorWithCause("startDate", errors.New("startDate is after endDate"))
	}
	if f.MinTotal != nil && f.MaxTotal != nil && f.MinTotal.Cmp(*f.MaxTotal) > 0 {
		totalErr = errs.NewValueIsInvalidErrorWithCause("minTotal", errors.New("minTotal is greater than maxTotal"))
	}
	return errors.Join(fulfillmentErr, payoutErr, vendorErr, dateErr, totalErr)
}

// ListOrdersQuery retrieves one page of orders.
//
// Example:
//
//	shipped := order.FulfillmentShipped
//	query, err := NewListOrdersQuery(ListOrdersFilter{FulfillmentStatus: &shipped}, 1, 20, SortNewest)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.TotalCount)
type ListOrdersQuery struct {
	filter   ListOrdersFilter
	page     int
	pageSize int
	sort     OrderSort

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates paging and filters. Zero page and pageSize
// select the first page and DefaultPageSize.
func NewListOrdersQuery(filter ListOrdersFilter, page, pageSize int, sort OrderSort) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	var pageErr, sizeErr, sortErr error
	if page < 1 {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		sizeErr = errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}
	if _, ok := getOrderSortStrings()[sort]; !ok {
		sortErr = errs.NewValueIsInvalidError("sort")
	}
	if err := errors.Join(pageErr, sizeErr, sortErr, filter.validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		sort:     sort,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ListOrdersFilter { return q.filter }
func (q ListOrdersQuery) Page() int { return q.page }
func (q ListOrdersQuery) PageSize() int { return q.pageSize }
func (q ListOrdersQuery) Sort() OrderSort { return q.sort }

// offset is the number of rows before the page. ok is false when the
// offset does not fit in an int, which is always past the last row.
func (q ListOrdersQuery) offset() (offset int, ok bool) {
	if q.page-1 > math.MaxInt/q.pageSize {
		return 0, false
	}
	return (q.page - 1) * q.pageSize, true
}

// OrderSummary is the listing read model of an order.
type OrderSummary struct {
	ID                kernel.UUID
	Number            string
	VendorID          kernel.UUID
	VendorName        string
	CustomerUserID    *kernel.UUID
	GuestName         string
	FulfillmentStatus string
	PayoutStatus      string
	TotalAmount       kernel.Money
	ItemCount         int
	CreatedAt         time.Time
	LastUpdated       time.Time
}

// ListOrdersQueryResponse carries one page and the number of orders that
// match the filter across all pages.
type ListOrdersQueryResponse struct {
	Orders     []OrderSummary
	TotalCount int64
	Page       int
	PageSize   int
}
