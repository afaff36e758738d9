package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// ConfirmOrderIDCommandHandler verifies the handover identifier, snapshots the
// seller-to-customer route, and sends the order out for delivery. The stored
// drop route later becomes the preferred distance source for settlement. After
// commit the customer is told the courier is on the way, best effort.
type ConfirmOrderIDCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  *services.RouteEstimator
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmOrderIDCommandHandler creates a handler for identifier confirmation.
func NewConfirmOrderIDCommandHandler(
	uowFactory OrderUoWFactory,
	estimator *services.RouteEstimator,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmOrderIDCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ConfirmOrderIDCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		publisher:  publisher,
		logger:     logger.With("component", "confirm-order-id"),
	}
}

// Handle processes the identifier confirmation and returns the updated order.
// A mismatched identifier is a validation error; replays past this phase
// succeed without re-estimating and without notifying the customer again.
func (h ConfirmOrderIDCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmOrderIDCommand,
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

	dropRoute, err := h.estimator.Estimate(ctx, aggregate.SellerLocation(), aggregate.CustomerLocation(), nil)
	if err != nil {
		return nil, err
	}

	changed, err := aggregate.ConfirmIdentifier(
		cmd.CourierID(), cmd.SubmittedID(), cmd.ProofImageURL(), dropRoute, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return aggregate, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyCustomerEnRoute(ctx, aggregate)
	return aggregate, nil
}

// notifyCustomerEnRoute tells the customer the courier left the pickup point.
func (h ConfirmOrderIDCommandHandler) notifyCustomerEnRoute(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}

	event := ports.OrderEvent{
		OrderID:    aggregate.ID(),
		Kind:       ports.EventCourierEnRoute,
		Recipient:  aggregate.CustomerID(),
		Audience:   ports.AudienceCustomer,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("en-route notification failed",
			"orderId", aggregate.ID(), "error", err)
	}
}
