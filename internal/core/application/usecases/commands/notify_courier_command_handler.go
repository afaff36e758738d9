package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// NotifyCourierCommandHandler records a courier on the order's notified list
// and publishes the offer to the courier's notification channel. Publishing is
// best effort; the recorded offer is what grants claim eligibility.
type NotifyCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewNotifyCourierCommandHandler creates a handler for courier offers.
func NewNotifyCourierCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) NotifyCourierCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return NotifyCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "notify-courier"),
	}
}

// Handle processes the courier offer command.
func (h NotifyCourierCommandHandler) Handle(ctx context.Context, cmd NotifyCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.NotifyCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		event := ports.OrderEvent{
			OrderID:    cmd.OrderID(),
			Kind:       ports.EventOrderAssigned,
			Recipient:  cmd.CourierID(),
			Audience:   ports.AudienceCourier,
			OccurredAt: time.Now().UTC(),
		}
		if err = h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("courier offer notification failed",
				"orderId", cmd.OrderID(), "courierId", cmd.CourierID(), "error", err)
		}
	}

	return nil
}
