package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestWithdrawalCommandIsNotConstructed = errors.New(
	"RequestWithdrawalCommand must be created via NewRequestWithdrawalCommand constructor",
)

// RequestWithdrawalCommand represents an actor asking to withdraw earned funds.
type RequestWithdrawalCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	ownerID   kernel.UUID
	ownerType wallet.OwnerType
	amount    kernel.Money

	guard guard.ConstructorGuard
}

// NewRequestWithdrawalCommand creates a command to file a withdrawal request.
func NewRequestWithdrawalCommand(
	requestID, ownerID kernel.UUID,
	ownerType string,
	amount float64,
) (RequestWithdrawalCommand, error) {
	if err := errors.Join(requestID.Validate(), ownerID.Validate()); err != nil {
		return RequestWithdrawalCommand{}, err
	}
	walletOwner := wallet.OwnerType(ownerType)
	if err := walletOwner.Validate(); err != nil {
		return RequestWithdrawalCommand{}, err
	}
	if amount <= 0 {
		return RequestWithdrawalCommand{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}

	return RequestWithdrawalCommand{
		requestID: requestID,
		ownerID:   ownerID,
		ownerType: walletOwner,
		amount:    kernel.NewMoneyFromFloat(amount),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRequestWithdrawalCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c RequestWithdrawalCommand) RequestID() kernel.UUID { return c.requestID }

// OwnerID returns the requesting actor.
func (c RequestWithdrawalCommand) OwnerID() kernel.UUID { return c.ownerID }

// OwnerType returns the requesting actor's wallet kind.
func (c RequestWithdrawalCommand) OwnerType() wallet.OwnerType { return c.ownerType }

// Amount returns the requested payout amount.
func (c RequestWithdrawalCommand) Amount() kernel.Money { return c.amount }
