package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents the payment-confirmation signal for an order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	method  order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command recording how the customer paid.
func NewConfirmPaymentCommand(orderID kernel.UUID, method string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	paymentMethod := order.PaymentMethod(method)
	if err := paymentMethod.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	cmd.orderID = orderID
	cmd.method = paymentMethod
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the order the payment belongs to.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Method returns the confirmed payment method.
func (c ConfirmPaymentCommand) Method() order.PaymentMethod { return c.method }
