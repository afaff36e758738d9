package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
)

// ApproveWithdrawalCommandHandler finalizes an approved payout: the request
// moves to approved and the ledger hold completes. The debit was already
// applied at request time, so the balance does not change here. The owner is
// notified of the review outcome after commit, best effort.
type ApproveWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewApproveWithdrawalCommandHandler creates a handler for withdrawal approval.
func NewApproveWithdrawalCommandHandler(
	uowFactory WithdrawalUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApproveWithdrawalCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ApproveWithdrawalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "approve-withdrawal"),
	}
}

// Handle processes the approval command and returns the approved request with
// its wallet.
func (h ApproveWithdrawalCommandHandler) Handle(
	ctx context.Context,
	cmd ApproveWithdrawalCommand,
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
	if err = request.Approve(now); err != nil {
		return WithdrawalResult{}, err
	}

	walletRepo := uow.WalletRepository()
	actorWallet, err := walletRepo.Get(ctx, request.WalletID())
	if err != nil {
		return WithdrawalResult{}, err
	}
	if err = actorWallet.SettleWithdrawalHold(request.TransactionID(), now); err != nil {
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

// notifyWithdrawalReviewed tells the wallet owner that an admin reviewed the
// payout request. The subject of the event is the request, not an order.
func notifyWithdrawalReviewed(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	requestID kernel.UUID,
	actorWallet *wallet.Wallet,
) {
	if publisher == nil {
		return
	}

	audience := ports.AudienceSeller
	if actorWallet.OwnerType() == wallet.OwnerCourier {
		audience = ports.AudienceCourier
	}

	event := ports.OrderEvent{
		Kind:       ports.EventWithdrawalReview,
		Recipient:  actorWallet.OwnerID(),
		Audience:   audience,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("withdrawal review notification failed",
			"requestId", requestID.String(), "error", err)
	}
}
