package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSettleOrderCommandIsNotConstructed = errors.New(
	"SettleOrderCommand must be created via NewSettleOrderCommand constructor",
)

// SettleOrderCommand represents a request to run (or resume) the financial
// settlement of a delivered order.
type SettleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSettleOrderCommand creates a command to settle a delivered order.
func NewSettleOrderCommand(orderID kernel.UUID) (SettleOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SettleOrderCommand{}, err
	}

	return SettleOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrderCommandIsNotConstructed)
}

// OrderID returns the order to settle.
func (c SettleOrderCommand) OrderID() kernel.UUID { return c.orderID }
