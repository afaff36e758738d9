package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmReachedDropCommandIsNotConstructed = errors.New(
	"ConfirmReachedDropCommand must be created via NewConfirmReachedDropCommand constructor",
)

// ConfirmReachedDropCommand represents a courier reporting arrival at the customer.
type ConfirmReachedDropCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReachedDropCommand creates a command for the drop-arrival transition.
func NewConfirmReachedDropCommand(orderID, courierID kernel.UUID) (ConfirmReachedDropCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ConfirmReachedDropCommand{}, err
	}

	return ConfirmReachedDropCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReachedDropCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReachedDropCommandIsNotConstructed)
}

// OrderID returns the order the courier arrived with.
func (c ConfirmReachedDropCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the reporting courier.
func (c ConfirmReachedDropCommand) CourierID() kernel.UUID { return c.courierID }
