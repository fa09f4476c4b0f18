package order

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var (
	// ErrDiscountIsNotConstructed is returned when a Discount instance was
	// not created through the NewDiscount factory method.
	ErrDiscountIsNotConstructed = errs.NewValueIsRequiredError("Discount must be created via NewDiscount constructor")

	// ErrTaxIsNotConstructed is returned when a Tax instance was not created
	// through the NewTax factory method.
	ErrTaxIsNotConstructed = errs.NewValueIsRequiredError("Tax must be created via NewTax constructor")

	// ErrPaymentInfoIsNotConstructed is returned when a PaymentInfo instance
	// was not created through the NewPaymentInfo factory method.
	ErrPaymentInfoIsNotConstructed = errs.NewValueIsRequiredError("PaymentInfo must be created via NewPaymentInfo constructor")
)

// Discount is an optional promotion applied to an order: the code that was
// redeemed and the absolute amount it took off the total.
type Discount struct {
	code   string
	amount float64

	guard guard.ConstructorGuard
}

// NewDiscount creates a validated discount. The code is required and the
// amount must be non-negative. The service trusts the pre-computed amount;
// it performs no pricing arithmetic of its own.
func NewDiscount(code string, amount float64) (Discount, error) {
	if code == "" {
		return Discount{}, errs.NewValueIsRequiredError("code")
	}
	if amount < 0 {
		return Discount{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%v is negative", amount))
	}

	return Discount{code: code, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the discount was created through NewDiscount.
func (d Discount) Validate() error {
	return d.guard.Validate(ErrDiscountIsNotConstructed)
}

// Code returns the redeemed discount code.
func (d Discount) Code() string { return d.code }

// Amount returns the absolute discount amount.
func (d Discount) Amount() float64 { return d.amount }

// Tax is the optional tax record of an order: the rate that was applied and
// the resulting absolute amount, both pre-computed by the caller.
type Tax struct {
	rate   float64
	amount float64

	guard guard.ConstructorGuard
}

// NewTax creates a validated tax record. Rate and amount must be
// non-negative.
func NewTax(rate, amount float64) (Tax, error) {
	if rate < 0 {
		return Tax{}, errs.NewValueIsInvalidErrorWithCause("taxRate",
			fmt.Errorf("%v is negative", rate))
	}
	if amount < 0 {
		return Tax{}, errs.NewValueIsInvalidErrorWithCause("taxAmount",
			fmt.Errorf("%v is negative", amount))
	}

	return Tax{rate: rate, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the tax record was created through NewTax.
func (t Tax) Validate() error {
	return t.guard.Validate(ErrTaxIsNotConstructed)
}

// Rate returns the applied tax rate.
func (t Tax) Rate() float64 { return t.rate }

// Amount returns the absolute tax amount.
func (t Tax) Amount() float64 { return t.amount }

// PaymentInfo records an already-executed payment supplied at order
// creation. Gateway integration is out of scope; the record is stored
// as reported by the caller.
type PaymentInfo struct {
	provider      string
	transactionID string
	paidAt        time.Time

	guard guard.ConstructorGuard
}

// NewPaymentInfo creates a validated payment record.
// Provider and transaction ID are required; paidAt must not be zero.
func NewPaymentInfo(provider, transactionID string, paidAt time.Time) (PaymentInfo, error) {
	if provider == "" {
		return PaymentInfo{}, errs.NewValueIsRequiredError("provider")
	}
	if transactionID == "" {
		return PaymentInfo{}, errs.NewValueIsRequiredError("transactionId")
	}
	if paidAt.IsZero() {
		return PaymentInfo{}, errs.NewValueIsRequiredError("paidAt")
	}

	return PaymentInfo{
		provider:      provider,
		transactionID: transactionID,
		paidAt:        paidAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the payment record was created through NewPaymentInfo.
func (p PaymentInfo) Validate() error {
	return p.guard.Validate(ErrPaymentInfoIsNotConstructed)
}

// Provider returns the payment provider name.
func (p PaymentInfo) Provider() string { return p.provider }

// TransactionID returns the provider-side transaction identifier.
func (p PaymentInfo) TransactionID() string { return p.transactionID }

// PaidAt returns when the payment was executed.
func (p PaymentInfo) PaidAt() time.Time { return p.paidAt }
