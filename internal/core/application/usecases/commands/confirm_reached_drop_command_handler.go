package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ConfirmReachedDropCommandHandler records the courier's arrival at the customer.
type ConfirmReachedDropCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmReachedDropCommandHandler creates a handler for drop arrival.
func NewConfirmReachedDropCommandHandler(uowFactory OrderUoWFactory) ConfirmReachedDropCommandHandler {
	return ConfirmReachedDropCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the drop-arrival command and returns the updated order.
func (h ConfirmReachedDropCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmReachedDropCommand,
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

	changed, err := aggregate.ReachDrop(cmd.CourierID(), time.Now().UTC())
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
