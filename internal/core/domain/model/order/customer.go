package order

import (
	"errors"
	"net/mail"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewRegisteredCustomer or NewGuestCustomer")

// GuestDetails identifies a customer who checked out without an account.
type GuestDetails struct {
	name  string
	email string
	phone string
}

func (g GuestDetails) Name() string { return g.name }
func (g GuestDetails) Email() string { return g.email }
func (g GuestDetails) Phone() string { return g.phone }

// Customer is exactly one of a registered user reference or guest details.
type Customer struct {
	userID *kernel.UUID
	guest  *GuestDetails
	guard  guard.ConstructorGuard
}

func NewRegisteredCustomer(userID kernel.UUID) (Customer, error) {
	if err := userID.Validate(); err != nil {
		return Customer{}, err
	}
	return Customer{userID: &userID, guard: guard.NewConstructorGuard()}, nil
}

// NewGuestCustomer requires a name and a parseable email address. phone is
// optional.
func NewGuestCustomer(name, email, phone string) (Customer, error) {
	g := GuestDetails{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}

	var emailErr error
	if g.email == "" {
		emailErr = errs.NewValueIsRequiredError("guest email")
	} else if addr, err := mail.ParseAddress(g.email); err != nil || addr.Address != g.email {
		emailErr = errs.NewValueIsInvalidErrorWithCause("guest email", err)
	}

	var nameErr error
	if g.name == "" {
		nameErr = errs.NewValueIsRequiredError("guest name")
	}

	if err := errors.Join(nameErr, emailErr); err != nil {
		return Customer{}, err
	}
	return Customer{guest: &g, guard: guard.NewConstructorGuard()}, nil
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// UserID is nil for guests.
func (c Customer) UserID() *kernel.UUID {
	if c.userID == nil {
		return nil
	}
	id := *c.userID
	return &id
}

// Guest is nil for registered customers.
func (c Customer) Guest() *GuestDetails {
	if c.guest == nil {
		return nil
	}
	g := *c.guest
	return &g
}

func (c Customer) IsGuest() bool {
	return c.guest != nil
}
