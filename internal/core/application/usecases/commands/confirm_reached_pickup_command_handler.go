package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// DefaultConfirmationReminderDelay is how long after pickup arrival the courier
// is reminded to confirm the order identifier.
const DefaultConfirmationReminderDelay = 10 * time.Second

// ConfirmReachedPickupCommandHandler records pickup arrival and schedules a
// fire-and-forget reminder asking the courier to confirm the order identifier.
// The reminder re-validates the phase when it fires: if the order has already
// moved past at_pickup, it does nothing.
type ConfirmReachedPickupCommandHandler struct {
	uowFactory    OrderUoWFactory
	publisher     ports.EventPublisher
	reminderDelay time.Duration
	logger        *slog.Logger
}

// NewConfirmReachedPickupCommandHandler creates a handler for pickup arrival.
// A non-positive reminderDelay falls back to DefaultConfirmationReminderDelay.
func NewConfirmReachedPickupCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	reminderDelay time.Duration,
	logger *slog.Logger,
) ConfirmReachedPickupCommandHandler {
	if reminderDelay <= 0 {
		reminderDelay = DefaultConfirmationReminderDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ConfirmReachedPickupCommandHandler{
		uowFactory:    uowFactory,
		publisher:     publisher,
		reminderDelay: reminderDelay,
		logger:        logger.With("component", "reached-pickup"),
	}
}

// Handle processes the pickup-arrival command and returns the updated order.
// Replays at or past at_pickup succeed without scheduling another reminder.
func (h ConfirmReachedPickupCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmReachedPickupCommand,
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

	changed, err := aggregate.ReachPickup(cmd.CourierID(), time.Now().UTC())
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

	h.scheduleConfirmationReminder(cmd.OrderID(), cmd.CourierID())
	return aggregate, nil
}

// scheduleConfirmationReminder arms the one-shot reminder timer.
func (h ConfirmReachedPickupCommandHandler) scheduleConfirmationReminder(orderID, courierID kernel.UUID) {
	if h.publisher == nil {
		return
	}

	time.AfterFunc(h.reminderDelay, func() {
		ctx := context.Background()

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			h.logger.Warn("confirmation reminder skipped", "orderId", orderID, "error", err)
			return
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		aggregate, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			h.logger.Warn("confirmation reminder skipped", "orderId", orderID, "error", err)
			return
		}
		if aggregate.Phase() != order.AtPickup {
			return
		}

		event := ports.OrderEvent{
			OrderID:    orderID,
			Kind:       ports.EventConfirmIdentity,
			Recipient:  courierID,
			Audience:   ports.AudienceCourier,
			OccurredAt: time.Now().UTC(),
		}
		if err = h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("confirmation reminder failed", "orderId", orderID, "error", err)
		}
	})
}
