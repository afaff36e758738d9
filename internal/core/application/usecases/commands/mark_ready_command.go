package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand represents the seller signaling that preparation finished.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates a command marking the order ready for pickup.
func NewMarkReadyCommand(orderID kernel.UUID) (MarkReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// OrderID returns the order to mark ready.
func (c MarkReadyCommand) OrderID() kernel.UUID { return c.orderID }
