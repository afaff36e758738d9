package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// WithdrawalResult pairs a withdrawal request with the wallet it draws from,
// as both stand after the operation.
type WithdrawalResult struct {
	Request *wallet.WithdrawalRequest
	Wallet  *wallet.Wallet
}

// RequestWithdrawalCommandHandler files a withdrawal request and applies the
// optimistic hold: the wallet balance drops at request time so the held funds
// cannot be spent twice while an admin reviews the payout. An actor may have
// at most one pending request at a time.
type RequestWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
}

// NewRequestWithdrawalCommandHandler creates a handler for withdrawal requests.
func NewRequestWithdrawalCommandHandler(uowFactory WithdrawalUoWFactory) RequestWithdrawalCommandHandler {
	return RequestWithdrawalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the withdrawal request and returns the filed request with
// the debited wallet. A second request while one is pending fails with a
// conflict; an amount above the balance fails with insufficient funds.
func (h RequestWithdrawalCommandHandler) Handle(
	ctx context.Context,
	cmd RequestWithdrawalCommand,
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

	walletRepo := uow.WalletRepository()
	actorWallet, err := walletRepo.GetByOwner(ctx, cmd.OwnerID(), cmd.OwnerType())
	if err != nil {
		return WithdrawalResult{}, err
	}

	withdrawalRepo := uow.WithdrawalRepository()
	outstanding, err := withdrawalRepo.GetOutstandingByWallet(ctx, actorWallet.ID())
	if err != nil {
		return WithdrawalResult{}, err
	}
	for _, request := range outstanding {
		if request.Status() == wallet.WithdrawalPending {
			return WithdrawalResult{}, errs.NewConflictError("a pending withdrawal request already exists")
		}
	}

	now := time.Now().UTC()
	hold, err := actorWallet.RequestWithdrawalHold(kernel.NewUUID(), cmd.Amount(), now)
	if err != nil {
		return WithdrawalResult{}, err
	}

	request, err := wallet.NewWithdrawalRequest(
		cmd.RequestID(), actorWallet.ID(), hold.ID(), cmd.Amount(), now)
	if err != nil {
		return WithdrawalResult{}, err
	}

	if err = walletRepo.Update(ctx, actorWallet); err != nil {
		return WithdrawalResult{}, err
	}
	if err = withdrawalRepo.Add(ctx, request); err != nil {
		return WithdrawalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return WithdrawalResult{}, err
	}

	return WithdrawalResult{Request: request, Wallet: actorWallet}, nil
}
