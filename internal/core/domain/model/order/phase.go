package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Phase represents the fine-grained delivery lifecycle step of an order.
// Phases are strictly ordered, which is what makes idempotent replays cheap to
// detect: a transition targeting a phase at or before the current one is a no-op.
//
// Phase progression:
//
//	Unassigned -> EnRouteToPickup -> AtPickup -> EnRouteToDelivery -> AtDelivery -> PhaseCompleted
//
// Every phase maps to exactly one coarse delivery status for external consumers
// (see CoarseStatus). The coarse status is derived, never stored, so the two can
// not drift apart.
type Phase int

const (
	// PhaseUnknown represents an invalid or undefined phase.
	PhaseUnknown Phase = iota

	// Unassigned is the initial phase before any courier has claimed the order.
	Unassigned

	// EnRouteToPickup means a courier has been assigned and is heading to the seller.
	EnRouteToPickup

	// AtPickup means the courier has arrived at the seller and awaits handover.
	AtPickup

	// EnRouteToDelivery means the order identifier was confirmed at pickup and the
	// courier is heading to the customer.
	EnRouteToDelivery

	// AtDelivery means the courier has arrived at the customer location.
	AtDelivery

	// PhaseCompleted means the delivery has been handed over. Final phase.
	PhaseCompleted
)

// getPhaseStrings returns the persistence/display names of all phases.
func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		PhaseUnknown:      "unknown",
		Unassigned:        "unassigned",
		EnRouteToPickup:   "en_route_to_pickup",
		AtPickup:          "at_pickup",
		EnRouteToDelivery: "en_route_to_delivery",
		AtDelivery:        "at_delivery",
		PhaseCompleted:    "completed",
	}
}

// String returns the snake_case name of the phase.
// Implements the fmt.Stringer interface; safe on invalid values.
func (p Phase) String() string {
	if s, ok := getPhaseStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the phase is one of the defined lifecycle phases.
func (p Phase) Validate() error {
	if p < Unassigned || p > PhaseCompleted {
		return errs.NewValueIsInvalidErrorWithCause("phase is invalid",
			fmt.Errorf("%d is not a valid phase", p))
	}
	return nil
}

// AtLeast reports whether the phase is at or past the given phase in the
// delivery progression. Used by transitions to recognize idempotent replays.
func (p Phase) AtLeast(other Phase) bool {
	return p >= other
}

// CoarseStatus returns the externally visible delivery status for the phase.
//
// Mapping table:
//
//	Unassigned                      -> "unassigned"
//	EnRouteToPickup                 -> "accepted"
//	AtPickup                        -> "reached_pickup"
//	EnRouteToDelivery, AtDelivery   -> "order_confirmed"
//	PhaseCompleted                  -> "delivered"
func (p Phase) CoarseStatus() string {
	switch p {
	case EnRouteToPickup:
		return "accepted"
	case AtPickup:
		return "reached_pickup"
	case EnRouteToDelivery, AtDelivery:
		return "order_confirmed"
	case PhaseCompleted:
		return "delivered"
	case PhaseUnknown, Unassigned:
		return "unassigned"
	default:
		return "unassigned"
	}
}
