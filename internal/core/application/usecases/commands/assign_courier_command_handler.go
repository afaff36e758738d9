package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// AssignCourierCommandHandler claims an order for a courier.
//
// The race between concurrent claims is settled by the storage layer:
// ClaimForCourier performs a single conditional update that only matches while
// the courier column is still empty, so of N concurrent claims exactly one
// wins and the rest receive a conflict. The aggregate-level eligibility check
// runs first to give non-racing callers precise errors, and a repeat claim by
// the current holder is recognized as an idempotent replay before any write.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  *services.RouteEstimator
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	estimator *services.RouteEstimator,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
	}
}

// Handle processes the claim and returns the claimed order with its pickup
// route. Error classes map to transport statuses: conflict when another
// courier holds the order, precondition failure when the order is not
// claimable, not-found when it does not exist.
func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	cmd AssignCourierCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.CanBeClaimedBy(cmd.CourierID()); err != nil {
		return nil, err
	}
	if holder := aggregate.Courier(); holder != nil && holder.IsEqual(cmd.CourierID()) {
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return aggregate, nil
	}

	now := time.Now().UTC()
	if err = orderRepo.ClaimForCourier(ctx, cmd.OrderID(), cmd.CourierID(), now); err != nil {
		return nil, err
	}

	pickupRoute, err := h.estimator.Estimate(ctx, cmd.CourierLocation(), aggregate.SellerLocation(), nil)
	if err != nil {
		return nil, err
	}

	if err = aggregate.Assign(cmd.CourierID(), pickupRoute, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
