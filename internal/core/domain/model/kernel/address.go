package kernel

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress")

// Address is a postal address used for shipping and billing.
type Address struct {
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// NewAddress trims every field and requires line1, city, postal code and an
// ISO 3166-1 alpha-2 country code. line2 and region are optional.
func NewAddress(line1, line2, city, region, postalCode, country string) (Address, error) {
	a := Address{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		region:     strings.TrimSpace(region),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.ToUpper(strings.TrimSpace(country)),
	}

	if err := errors.Join(
		required("line1", a.line1),
		required("city", a.city),
		required("postalCode", a.postalCode),
		validCountry(a.country),
	); err != nil {
		return Address{}, err
	}

	a.guard = guard.NewConstructorGuard()
	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string { return a.line1 }
func (a Address) Line2() string { return a.line2 }
func (a Address) City() string { return a.city }
func (a Address) Region() string { return a.region }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string { return a.country }

func (a Address) IsEqual(other Address) bool {
	return a == other
}

func required(param, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func validCountry(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("country")
	}
	if len(code) != 2 || strings.IndexFunc(code, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return errs.NewValueIsInvalidError("country")
	}
	return nil
}
