package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrNotifyCourierCommandIsNotConstructed = errors.New(
	"NotifyCourierCommand must be created via NewNotifyCourierCommand constructor",
)

// NotifyCourierCommand represents offering an order to a courier. Notified
// couriers may claim the order regardless of its preparation status.
type NotifyCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewNotifyCourierCommand creates a command recording a courier offer.
func NewNotifyCourierCommand(orderID, courierID kernel.UUID) (NotifyCourierCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return NotifyCourierCommand{}, err
	}

	return NotifyCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyCourierCommand) Validate() error {
	return c.guard.Validate(ErrNotifyCourierCommandIsNotConstructed)
}

// OrderID returns the offered order.
func (c NotifyCourierCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the courier being offered the order.
func (c NotifyCourierCommand) CourierID() kernel.UUID { return c.courierID }
