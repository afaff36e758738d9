package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// RejectWithdrawalCommandHandler rejects a payout request and releases its
// hold: the linked ledger transaction is cancelled and the optimistic debit
// reversed, restoring the wallet balance. The owner is notified of the review
// outcome after commit, best effort.
type RejectWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRejectWithdrawalCommandHandler creates a handler for withdrawal rejection.
func NewRejectWithdrawalCommandHandler(
	uowFactory WithdrawalUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RejectWithdrawalCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return RejectWithdrawalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "reject-withdrawal"),
	}
}

// Handle processes the rejection command and returns the rejected request with
// its restored wallet.
func (h RejectWithdrawalCommandHandler) Handle(
	ctx context.Context,
	cmd RejectWithdrawalCommand,
) (WithdrawalResult, error) {
	if err := cmd.Validate(); err != nil {
		return WithdrawalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return WithdrawalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	withdrawalRepo := uow.WithdrawalRepository()
	request, err := withdrawalRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return WithdrawalResult{}, err
	}

	now := time.Now().UTC()
	if err = request.Reject(cmd.Reason(), now); err != nil {
		return WithdrawalResult{}, err
	}

	walletRepo := uow.WalletRepository()
	actorWallet, err := walletRepo.Get(ctx, request.WalletID())
	if err != nil {
		return WithdrawalResult{}, err
	}
	if err = actorWallet.ReleaseWithdrawalHold(request.TransactionID(), now); err != nil {
		return WithdrawalResult{}, err
	}

	if err = withdrawalRepo.Update(ctx, request); err != nil {
		return WithdrawalResult{}, err
	}
	if err = walletRepo.Update(ctx, actorWallet); err != nil {
		return WithdrawalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return WithdrawalResult{}, err
	}

	notifyWithdrawalReviewed(ctx, h.publisher, h.logger, cmd.RequestID(), actorWallet)
	return WithdrawalResult{Request: request, Wallet: actorWallet}, nil
}
