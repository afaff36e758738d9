package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request: the parties, both
// locations, and the monetary breakdown of a new order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	sellerID         kernel.UUID
	customerID       kernel.UUID
	sellerLocation   kernel.GeoPoint
	customerLocation kernel.GeoPoint
	pricing          order.Pricing

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Coordinates are validated through kernel.NewGeoPoint and the breakdown
// through order.NewPricing before the command is considered constructed.
func NewCreateOrderCommand(
	orderID, sellerID, customerID kernel.UUID,
	sellerLat, sellerLng, customerLat, customerLng float64,
	subtotal, discount, deliveryFee, platformFee float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		sellerID.Validate(),
		customerID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.sellerID = sellerID
	cmd.customerID = customerID

	sellerLocation, err := kernel.NewGeoPoint(sellerLat, sellerLng)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	customerLocation, err := kernel.NewGeoPoint(customerLat, customerLng)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.sellerLocation = sellerLocation
	cmd.customerLocation = customerLocation

	pricing, err := order.NewPricing(
		kernel.NewMoneyFromFloat(subtotal),
		kernel.NewMoneyFromFloat(discount),
		kernel.NewMoneyFromFloat(deliveryFee),
		kernel.NewMoneyFromFloat(platformFee),
	)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.pricing = pricing

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// SellerID returns the seller fulfilling the order.
func (c CreateOrderCommand) SellerID() kernel.UUID { return c.sellerID }

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// SellerLocation returns the pickup coordinates.
func (c CreateOrderCommand) SellerLocation() kernel.GeoPoint { return c.sellerLocation }

// CustomerLocation returns the delivery coordinates.
func (c CreateOrderCommand) CustomerLocation() kernel.GeoPoint { return c.customerLocation }

// Pricing returns the validated monetary breakdown.
func (c CreateOrderCommand) Pricing() order.Pricing { return c.pricing }
