package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// CompleteDeliveryResult is the outcome reported to the caller: the delivered
// order, whether settlement finished, and the figures when it did.
type CompleteDeliveryResult struct {
	Order      *order.Order
	Settled    bool
	Settlement SettlementResult
}

// CompleteDeliveryCommandHandler marks the order delivered and then runs
// settlement.
//
// The delivered transition commits in its own transaction first: the delivery
// outcome must survive even if settlement fails afterwards. A failed
// settlement leaves the order flagged as settlement-pending, and the resume
// job re-invokes the orchestration later. Replaying the command on an already
// delivered order re-enters settlement, whose steps all no-op, and returns
// the originally recorded figures.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	settler    SettleOrderCommandHandler
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	settler SettleOrderCommandHandler,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		settler:    settler,
		logger:     logger.With("component", "complete-delivery"),
	}
}

// Handle processes the completion command.
func (h CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (CompleteDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	aggregate, err := h.markDelivered(ctx, cmd)
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	settleCmd, err := NewSettleOrderCommand(cmd.OrderID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	settlement, err := h.settler.Handle(ctx, settleCmd)
	if err != nil {
		h.logger.Error("settlement failed, order left pending for resume",
			"orderId", cmd.OrderID(), "error", err)
		return CompleteDeliveryResult{Order: aggregate, Settled: false}, nil
	}

	return CompleteDeliveryResult{Order: aggregate, Settled: true, Settlement: settlement}, nil
}

// markDelivered commits the delivered transition in its own transaction and
// returns the delivered aggregate.
func (h CompleteDeliveryCommandHandler) markDelivered(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (*order.Order, error) {
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

	changed, err := aggregate.CompleteDelivery(cmd.CourierID(), cmd.Rating(), cmd.Review(), time.Now().UTC())
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

	return aggregate, nil
}
