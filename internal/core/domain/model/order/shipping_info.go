package order

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrShippingInfoIsNotConstructed is returned when a ShippingInfo instance
// was not created through the NewShippingInfo factory method.
var ErrShippingInfoIsNotConstructed = errs.NewValueIsRequiredError("ShippingInfo must be created via NewShippingInfo constructor")

// ShippingInfo is the delivery address attached to an order. Every order
// carries exactly one, fixed at creation. The second address line is the
// only optional field.
type ShippingInfo struct {
	fullName   string
	address1   string
	address2   string
	city       string
	state      string
	postalCode string
	country    string
	phone      string

	guard guard.ConstructorGuard
}

// NewShippingInfo creates a validated shipping record.
// All fields except address2 are required.
func NewShippingInfo(fullName, address1, address2, city, state, postalCode, country, phone string) (ShippingInfo, error) {
	if err := errors.Join(
		requireField("fullName", fullName),
		requireField("address1", address1),
		requireField("city", city),
		requireField("state", state),
		requireField("postalCode", postalCode),
		requireField("country", country),
		requireField("phone", phone),
	); err != nil {
		return ShippingInfo{}, err
	}

	return ShippingInfo{
		fullName:   fullName,
		address1:   address1,
		address2:   address2,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
		phone:      phone,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Validate ensures the shipping record was created through NewShippingInfo.
func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}

// FullName returns the recipient's name.
func (s ShippingInfo) FullName() string { return s.fullName }

// Address1 returns the first address line.
func (s ShippingInfo) Address1() string { return s.address1 }

// Address2 returns the optional second address line, empty when absent.
func (s ShippingInfo) Address2() string { return s.address2 }

// City returns the destination city.
func (s ShippingInfo) City() string { return s.city }

// State returns the destination state or region.
func (s ShippingInfo) State() string { return s.state }

// PostalCode returns the destination postal code.
func (s ShippingInfo) PostalCode() string { return s.postalCode }

// Country returns the destination country.
func (s ShippingInfo) Country() string { return s.country }

// Phone returns the recipient's contact phone number.
func (s ShippingInfo) Phone() string { return s.phone }
