package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the top-level lifecycle state of an order as seen by the
// storefront: payment intake, kitchen progress, delivery, and the terminal states.
//
// State transitions:
//
//	Pending -> Preparing -> Ready -> OutForDelivery -> Delivered
//	   \__________\__________\______________\
//	                                          -> Cancelled
//
// Delivered and Cancelled are terminal. Courier assignment does not change the
// top-level status; the fine-grained delivery progression lives in Phase, and
// OutForDelivery is entered when the courier confirms the order at pickup.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status after checkout, before payment confirmation.
	Pending

	// Preparing means payment is confirmed and the seller is preparing the order.
	Preparing

	// Ready means the seller finished preparation and the order awaits pickup.
	Ready

	// OutForDelivery means the courier confirmed pickup and is heading to the customer.
	OutForDelivery

	// Delivered means the order reached the customer. Terminal.
	Delivered

	// Cancelled means the order was aborted before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns the persistence/display names of all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		Pending:        "pending",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// String returns the snake_case name of the status.
// Implements the fmt.Stringer interface; safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle statuses.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible from the status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowsAssignment reports whether an unnotified courier may claim an order in
// this status. Notified couriers may additionally claim regardless of status,
// see Order.CanBeClaimedBy.
func (s Status) AllowsAssignment() bool {
	return s == Preparing || s == Ready
}
