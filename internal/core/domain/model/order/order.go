package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for the delivery lifecycle of a single marketplace
// order. It owns both the top-level Status and the fine-grained delivery Phase,
// the courier assignment, the per-leg route snapshots, the pricing breakdown, and
// the settlement markers.
//
// Invariants:
//   - At most one courier reference at a time; once set it is only ever written
//     by the atomic claim operation at the storage layer, never reassigned here.
//   - Every transition targeting an already-reached-or-passed phase succeeds
//     silently (returns changed=false) instead of erroring, because couriers
//     retry aggressively over unreliable mobile networks.
//   - A cancelled order short-circuits every subsequent transition attempt with
//     a precondition error.
//   - The settlement markers (cash recorded, settlement completed) only move
//     from false to true.
type Order struct {
	id               kernel.UUID
	sellerID         kernel.UUID
	customerID       kernel.UUID
	sellerLocation   kernel.GeoPoint
	customerLocation kernel.GeoPoint

	status  Status
	pricing Pricing
	payment PaymentMethod

	courierID        *kernel.UUID
	notifiedCouriers []kernel.UUID
	assignedAt       *time.Time

	phase           Phase
	pickupRoute     Route
	dropRoute       Route
	proofImageURL   string
	reachedPickupAt *time.Time
	pickedUpAt      *time.Time
	reachedDropAt   *time.Time
	deliveredAt     *time.Time

	rating *int
	review string

	cashRecorded   bool
	settlementDone bool

	isConstructed bool
}

// NewOrder creates a new order at checkout time: status Pending, phase Unassigned,
// no courier, payment method not yet confirmed.
func NewOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	customerID kernel.UUID,
	sellerLocation kernel.GeoPoint,
	customerLocation kernel.GeoPoint,
	pricing Pricing,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		customerID.Validate(),
		sellerLocation.Validate(),
		customerLocation.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:               id,
		sellerID:         sellerID,
		customerID:       customerID,
		sellerLocation:   sellerLocation,
		customerLocation: customerLocation,
		status:           Pending,
		phase:            Unassigned,
		pricing:          pricing,
		isConstructed:    true,
	}, nil
}

// RestoreParams carries the full persisted state of an order for reconstruction.
type RestoreParams struct {
	ID               kernel.UUID
	SellerID         kernel.UUID
	CustomerID       kernel.UUID
	SellerLocation   kernel.GeoPoint
	CustomerLocation kernel.GeoPoint
	Status           Status
	Phase            Phase
	Pricing          Pricing
	Payment          PaymentMethod
	CourierID        *kernel.UUID
	NotifiedCouriers []kernel.UUID
	AssignedAt       *time.Time
	PickupRoute      Route
	DropRoute        Route
	ProofImageURL    string
	ReachedPickupAt  *time.Time
	PickedUpAt       *time.Time
	ReachedDropAt    *time.Time
	DeliveredAt      *time.Time
	Rating           *int
	Review           string
	CashRecorded     bool
	SettlementDone   bool
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation-time transitions. Status, phase and courier consistency are validated.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.SellerID.Validate(),
		p.CustomerID.Validate(),
		p.Status.Validate(),
		p.Phase.Validate(),
	); err != nil {
		return nil, err
	}

	if p.CourierID == nil && p.Phase.AtLeast(EnRouteToPickup) {
		return nil, errs.NewValueIsInvalidErrorWithCause("order state",
			fmt.Errorf("phase %s requires an assigned courier", p.Phase))
	}

	return &Order{
		id:               p.ID,
		sellerID:         p.SellerID,
		customerID:       p.CustomerID,
		sellerLocation:   p.SellerLocation,
		customerLocation: p.CustomerLocation,
		status:           p.Status,
		phase:            p.Phase,
		pricing:          p.Pricing,
		payment:          p.Payment,
		courierID:        p.CourierID,
		notifiedCouriers: p.NotifiedCouriers,
		assignedAt:       p.AssignedAt,
		pickupRoute:      p.PickupRoute,
		dropRoute:        p.DropRoute,
		proofImageURL:    p.ProofImageURL,
		reachedPickupAt:  p.ReachedPickupAt,
		pickedUpAt:       p.PickedUpAt,
		reachedDropAt:    p.ReachedDropAt,
		deliveredAt:      p.DeliveredAt,
		rating:           p.Rating,
		review:           p.Review,
		cashRecorded:     p.CashRecorded,
		settlementDone:   p.SettlementDone,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// SellerID returns the seller the order was placed against.
func (o *Order) SellerID() kernel.UUID { return o.sellerID }

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// SellerLocation returns the pickup coordinates captured at checkout.
func (o *Order) SellerLocation() kernel.GeoPoint { return o.sellerLocation }

// CustomerLocation returns the delivery coordinates captured at checkout.
func (o *Order) CustomerLocation() kernel.GeoPoint { return o.customerLocation }

// Status returns the top-level order status.
func (o *Order) Status() Status { return o.status }

// Phase returns the fine-grained delivery phase.
func (o *Order) Phase() Phase { return o.phase }

// DeliveryStatus returns the coarse externally-visible delivery status derived
// from the phase (see Phase.CoarseStatus).
func (o *Order) DeliveryStatus() string { return o.phase.CoarseStatus() }

// Pricing returns the monetary breakdown captured at checkout.
func (o *Order) Pricing() Pricing { return o.pricing }

// PaymentMethod returns the confirmed payment method, or PaymentUnknown.
func (o *Order) PaymentMethod() PaymentMethod { return o.payment }

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// NotifiedCouriers returns the couriers that were offered this order.
func (o *Order) NotifiedCouriers() []kernel.UUID {
	return append([]kernel.UUID(nil), o.notifiedCouriers...)
}

// AssignedAt returns the assignment timestamp, or nil if unassigned.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// PickupRoute returns the courier-to-seller route snapshot stored at assignment.
func (o *Order) PickupRoute() Route { return o.pickupRoute }

// DropRoute returns the seller-to-customer route snapshot stored at pickup confirmation.
func (o *Order) DropRoute() Route { return o.dropRoute }

// ProofImageURL returns the optional pickup proof image URL.
func (o *Order) ProofImageURL() string { return o.proofImageURL }

// ReachedPickupAt returns when the courier reported arrival at the seller.
func (o *Order) ReachedPickupAt() *time.Time { return o.reachedPickupAt }

// PickedUpAt returns when the order identifier was confirmed at pickup.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// ReachedDropAt returns when the courier reported arrival at the customer.
func (o *Order) ReachedDropAt() *time.Time { return o.reachedDropAt }

// DeliveredAt returns the delivery completion timestamp.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Rating returns the optional delivery rating left by the courier flow.
func (o *Order) Rating() *int { return o.rating }

// Review returns the optional delivery review text.
func (o *Order) Review() string { return o.review }

// CashRecorded reports whether the COD cash-in-hand step has been applied.
func (o *Order) CashRecorded() bool { return o.cashRecorded }

// SettlementCompleted reports whether every settlement step has been applied.
func (o *Order) SettlementCompleted() bool { return o.settlementDone }

// SettlementPending reports whether the order is delivered but its settlement
// has not run to completion yet. The resume job re-drives these orders.
func (o *Order) SettlementPending() bool {
	return o.status == Delivered && !o.settlementDone
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ConfirmPayment consumes the payment-confirmation signal: records the payment
// method and moves the order from Pending to Preparing.
// Replays after confirmation are silent no-ops (changed=false).
func (o *Order) ConfirmPayment(method PaymentMethod) (bool, error) {
	if err := o.ensureNotTerminal(); err != nil {
		return false, err
	}
	if o.status != Pending {
		return false, nil
	}
	if err := method.Validate(); err != nil {
		return false, err
	}

	o.payment = method
	o.status = Preparing
	return true, nil
}

// MarkReady records that the seller finished preparing the order.
// Replays at or past Ready are silent no-ops.
func (o *Order) MarkReady() (bool, error) {
	if err := o.ensureNotTerminal(); err != nil {
		return false, err
	}
	if o.status == Ready || o.status == OutForDelivery {
		return false, nil
	}
	if o.status != Preparing {
		return false, errs.NewPreconditionFailedErrorWithCause("order is not being prepared",
			fmt.Errorf("status is %s", o.status))
	}

	o.status = Ready
	return true, nil
}

// NotifyCourier records that a courier was offered this order. Notified couriers
// may claim the order regardless of its status.
func (o *Order) NotifyCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.WasNotified(courierID) {
		return nil
	}

	o.notifiedCouriers = append(o.notifiedCouriers, courierID)
	return nil
}

// WasNotified reports whether the courier appears in the notified list.
func (o *Order) WasNotified(courierID kernel.UUID) bool {
	for _, id := range o.notifiedCouriers {
		if id.IsEqual(courierID) {
			return true
		}
	}
	return false
}

// CanBeClaimedBy checks assignment eligibility without mutating anything.
// Eligible when the order has no courier AND (status allows assignment OR the
// courier was notified). The permissive status clause lets any courier take a
// preparing/ready order first-come, mirroring production behavior.
//
// Returns nil when the courier already holds the order (idempotent replay),
// Conflict when a different courier holds it, and PreconditionFailed otherwise.
func (o *Order) CanBeClaimedBy(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.ensureNotTerminal(); err != nil {
		return err
	}
	if o.courierID != nil {
		if o.courierID.IsEqual(courierID) {
			return nil
		}
		return errs.NewConflictError("order is already assigned to another courier")
	}
	if !o.status.AllowsAssignment() && !o.WasNotified(courierID) {
		return errs.NewPreconditionFailedErrorWithCause("order is not available for assignment",
			fmt.Errorf("status is %s and courier was not notified", o.status))
	}
	return nil
}

// Assign records the courier and the pickup-leg route after the storage-layer
// claim succeeded. The atomic "set courier iff empty" write happens in the
// repository; this method only mirrors its outcome onto the aggregate.
func (o *Order) Assign(courierID kernel.UUID, pickupRoute Route, at time.Time) error {
	if err := o.CanBeClaimedBy(courierID); err != nil {
		return err
	}
	if o.courierID != nil && o.courierID.IsEqual(courierID) && o.phase.AtLeast(EnRouteToPickup) {
		return nil
	}
	if pickupRoute.IsZero() {
		return errs.NewValueIsRequiredError("pickup route")
	}

	o.courierID = &courierID
	o.assignedAt = &at
	o.pickupRoute = pickupRoute
	o.phase = EnRouteToPickup
	return nil
}

// ReachPickup records the courier's arrival at the seller.
// Replays at or past AtPickup are silent no-ops.
func (o *Order) ReachPickup(courierID kernel.UUID, at time.Time) (bool, error) {
	if err := o.guardActingCourier(courierID); err != nil {
		return false, err
	}
	if o.phase.AtLeast(AtPickup) {
		return false, nil
	}
	if o.phase != EnRouteToPickup {
		return false, errs.NewPreconditionFailedErrorWithCause("order is not en route to pickup",
			fmt.Errorf("phase is %s", o.phase))
	}

	o.phase = AtPickup
	o.reachedPickupAt = &at
	return true, nil
}

// ConfirmIdentifier verifies the order identifier submitted by the courier at
// pickup, stores the seller-to-customer route snapshot and the optional proof
// image URL, and moves the order out for delivery.
//
// A mismatched identifier is a validation error with no mutation. Replays at or
// past EnRouteToDelivery are silent no-ops. EnRouteToPickup is accepted as a
// legacy-compatible predecessor of AtPickup.
func (o *Order) ConfirmIdentifier(
	courierID kernel.UUID,
	submittedID string,
	proofImageURL string,
	dropRoute Route,
	at time.Time,
) (bool, error) {
	if err := o.guardActingCourier(courierID); err != nil {
		return false, err
	}
	if submittedID != o.id.String() {
		return false, errs.NewValueIsInvalidError("submitted order identifier does not match")
	}
	if o.phase.AtLeast(EnRouteToDelivery) {
		return false, nil
	}
	if o.phase != AtPickup && o.phase != EnRouteToPickup {
		return false, errs.NewPreconditionFailedErrorWithCause("order is not at pickup",
			fmt.Errorf("phase is %s", o.phase))
	}
	if dropRoute.IsZero() {
		return false, errs.NewValueIsRequiredError("drop route")
	}

	o.dropRoute = dropRoute
	o.proofImageURL = proofImageURL
	o.pickedUpAt = &at
	o.phase = EnRouteToDelivery
	o.status = OutForDelivery
	return true, nil
}

// ReachDrop records the courier's arrival at the customer.
// Replays at or past AtDelivery are silent no-ops.
func (o *Order) ReachDrop(courierID kernel.UUID, at time.Time) (bool, error) {
	if err := o.guardActingCourier(courierID); err != nil {
		return false, err
	}
	if o.phase.AtLeast(AtDelivery) {
		return false, nil
	}
	if o.phase != EnRouteToDelivery && o.status != OutForDelivery {
		return false, errs.NewPreconditionFailedErrorWithCause("order is not en route to delivery",
			fmt.Errorf("phase is %s", o.phase))
	}

	o.phase = AtDelivery
	o.reachedDropAt = &at
	return true, nil
}

// CompleteDelivery marks the order delivered and stores the optional rating and
// review. Replays on an already delivered order are silent no-ops so settlement
// is never re-triggered by a retry.
func (o *Order) CompleteDelivery(courierID kernel.UUID, rating *int, review string, at time.Time) (bool, error) {
	if err := o.guardActingCourier(courierID); err != nil {
		return false, err
	}
	if o.status == Delivered {
		return false, nil
	}
	if o.phase != AtDelivery && o.phase != EnRouteToDelivery && o.status != OutForDelivery {
		return false, errs.NewPreconditionFailedErrorWithCause("order is not out for delivery",
			fmt.Errorf("phase is %s, status is %s", o.phase, o.status))
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return false, errs.NewValueIsOutOfRangeError("rating", *rating, 1, 5)
	}

	o.status = Delivered
	o.phase = PhaseCompleted
	o.deliveredAt = &at
	o.rating = rating
	o.review = review
	return true, nil
}

// Cancel aborts the order. Delivered orders cannot be cancelled; replays on an
// already cancelled order are silent no-ops.
func (o *Order) Cancel() (bool, error) {
	if o.status == Cancelled {
		return false, nil
	}
	if o.status == Delivered {
		return false, errs.NewPreconditionFailedError("delivered order cannot be cancelled")
	}

	o.status = Cancelled
	return true, nil
}

// DeliveryDistanceKm resolves the distance used for courier-earning settlement:
// the stored seller-to-customer route, else the assignment-time route, else the
// great-circle distance between seller and customer.
func (o *Order) DeliveryDistanceKm() (float64, error) {
	if !o.dropRoute.IsZero() {
		return o.dropRoute.DistanceKm(), nil
	}
	if !o.pickupRoute.IsZero() {
		return o.pickupRoute.DistanceKm(), nil
	}
	return o.sellerLocation.DistanceKm(o.customerLocation)
}

// MarkCashRecorded flags that the COD cash-in-hand step has been applied.
func (o *Order) MarkCashRecorded() {
	o.cashRecorded = true
}

// MarkSettlementCompleted flags that every settlement step has been applied.
func (o *Order) MarkSettlementCompleted() {
	o.settlementDone = true
}

// ensureNotTerminal rejects mutations on delivered or cancelled orders.
func (o *Order) ensureNotTerminal() error {
	if o.status == Cancelled {
		return errs.NewPreconditionFailedError("order is cancelled")
	}
	if o.status == Delivered {
		return errs.NewPreconditionFailedError("order is already delivered")
	}
	return nil
}

// guardActingCourier ensures only the assigned courier drives delivery
// transitions. Cancelled orders short-circuit with a terminal-state error.
func (o *Order) guardActingCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status == Cancelled {
		return errs.NewPreconditionFailedError("order is cancelled")
	}
	if o.courierID == nil {
		return errs.NewPreconditionFailedError("order has no assigned courier")
	}
	if !o.courierID.IsEqual(courierID) {
		return errs.NewConflictError("order is assigned to a different courier")
	}
	return nil
}
