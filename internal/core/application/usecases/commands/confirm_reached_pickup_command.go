package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmReachedPickupCommandIsNotConstructed = errors.New(
	"ConfirmReachedPickupCommand must be created via NewConfirmReachedPickupCommand constructor",
)

// ConfirmReachedPickupCommand represents a courier reporting arrival at the seller.
type ConfirmReachedPickupCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReachedPickupCommand creates a command for the pickup-arrival transition.
func NewConfirmReachedPickupCommand(orderID, courierID kernel.UUID) (ConfirmReachedPickupCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ConfirmReachedPickupCommand{}, err
	}

	return ConfirmReachedPickupCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReachedPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReachedPickupCommandIsNotConstructed)
}

// OrderID returns the order the courier arrived for.
func (c ConfirmReachedPickupCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the reporting courier.
func (c ConfirmReachedPickupCommand) CourierID() kernel.UUID { return c.courierID }
