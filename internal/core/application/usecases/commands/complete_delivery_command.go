package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents the final handover: the courier marks the
// order delivered, optionally attaching the customer's rating and review.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	rating    *int
	review    string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command completing a delivery.
// A rating, when supplied, must be between 1 and 5.
func NewCompleteDeliveryCommand(
	orderID, courierID kernel.UUID,
	rating *int,
	review string,
) (CompleteDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return CompleteDeliveryCommand{}, errs.NewValueIsOutOfRangeError("rating", *rating, 1, 5)
	}

	return CompleteDeliveryCommand{
		orderID:   orderID,
		courierID: courierID,
		rating:    rating,
		review:    review,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the delivering courier.
func (c CompleteDeliveryCommand) CourierID() kernel.UUID { return c.courierID }

// Rating returns the optional customer rating.
func (c CompleteDeliveryCommand) Rating() *int { return c.rating }

// Review returns the optional customer review text.
func (c CompleteDeliveryCommand) Review() string { return c.review }
