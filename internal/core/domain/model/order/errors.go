package order

import (
	"errors"

	"marketplace/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemsLocked is returned when line items are changed after the order
	// has left pending.
	ErrItemsLocked = errors.New("line items can only change while the order is pending")

	// ErrTrackingNotAllowed is returned when tracking details are supplied
	// for an order that is not shipped or delivered.
	ErrTrackingNotAllowed = errors.New("tracking info is only accepted for shipped or delivered orders")

	// ErrOverrideNotAuthorized is returned when a non-admin actor attempts a
	// payout reset.
	ErrOverrideNotAuthorized = errors.New("payout override requires the admin role")

	ErrItemsRequired = errs.NewValueIsRequiredError("items")
)
