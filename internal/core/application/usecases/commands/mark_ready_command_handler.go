package commands

import (
	"context"
)

// MarkReadyCommandHandler moves a preparing order to ready.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkReadyCommandHandler creates a handler for the ready transition.
func NewMarkReadyCommandHandler(uowFactory OrderUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-ready command.
func (h MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
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

	changed, err := aggregate.MarkReady()
	if err != nil {
		return err
	}
	if !changed {
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
