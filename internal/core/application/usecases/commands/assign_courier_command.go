package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a courier's attempt to claim an order.
// The courier's current position seeds the pickup-leg route estimate.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	courierID       kernel.UUID
	courierLocation kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to claim an order for a courier.
func NewAssignCourierCommand(
	orderID, courierID kernel.UUID,
	courierLat, courierLng float64,
) (AssignCourierCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return AssignCourierCommand{}, err
	}

	courierLocation, err := kernel.NewGeoPoint(courierLat, courierLng)
	if err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:         orderID,
		courierID:       courierID,
		courierLocation: courierLocation,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c AssignCourierCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the claiming courier.
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }

// CourierLocation returns the courier's position at claim time.
func (c AssignCourierCommand) CourierLocation() kernel.GeoPoint { return c.courierLocation }
