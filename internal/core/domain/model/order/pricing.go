package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod string

const (
	// PaymentUnknown means the payment-confirmation signal has not arrived yet.
	PaymentUnknown PaymentMethod = ""

	// PaymentCash is cash-on-delivery: the courier collects physical cash.
	PaymentCash PaymentMethod = "cash"

	// PaymentOnline is an online payment settled through the gateway.
	PaymentOnline PaymentMethod = "online"
)

// Validate checks that the payment method is one of the known methods.
// The empty value is invalid: it may only exist before payment confirmation.
func (m PaymentMethod) Validate() error {
	if m != PaymentCash && m != PaymentOnline {
		return errs.NewValueIsInvalidError("payment method")
	}
	return nil
}

// Pricing is the immutable monetary breakdown of an order captured at checkout.
// The total is derived, not supplied: subtotal - discount + deliveryFee + platformFee.
//
// FoodPrice (subtotal - discount) is the commission base for seller settlement;
// delivery fee and platform fee are explicitly excluded from it.
type Pricing struct {
	subtotal    kernel.Money
	discount    kernel.Money
	deliveryFee kernel.Money
	platformFee kernel.Money
}

// NewPricing creates a validated pricing breakdown.
// All components must be non-negative and the discount must not exceed the subtotal.
func NewPricing(subtotal, discount, deliveryFee, platformFee kernel.Money) (Pricing, error) {
	var err error
	for name, m := range map[string]kernel.Money{
		"subtotal":    subtotal,
		"discount":    discount,
		"deliveryFee": deliveryFee,
		"platformFee": platformFee,
	} {
		if m.IsNegative() {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(name, m.String(), "0", "unbounded"))
		}
	}
	if err != nil {
		return Pricing{}, err
	}
	if discount.GreaterThan(subtotal) {
		return Pricing{}, errs.NewValueIsInvalidError("discount exceeds subtotal")
	}

	return Pricing{
		subtotal:    subtotal,
		discount:    discount,
		deliveryFee: deliveryFee,
		platformFee: platformFee,
	}, nil
}

// Subtotal returns the item subtotal before any adjustment.
func (p Pricing) Subtotal() kernel.Money {
	return p.subtotal
}

// Discount returns the discount applied to the subtotal.
func (p Pricing) Discount() kernel.Money {
	return p.discount
}

// DeliveryFee returns the delivery fee charged to the customer.
func (p Pricing) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// PlatformFee returns the platform fee charged to the customer.
func (p Pricing) PlatformFee() kernel.Money {
	return p.platformFee
}

// Total returns the amount the customer pays:
// subtotal - discount + deliveryFee + platformFee.
func (p Pricing) Total() kernel.Money {
	return p.subtotal.Sub(p.discount).Add(p.deliveryFee).Add(p.platformFee)
}

// FoodPrice returns the seller-settlement base: subtotal - discount.
// Commission is never charged on the delivery fee or the platform fee.
func (p Pricing) FoodPrice() kernel.Money {
	return p.subtotal.Sub(p.discount)
}
