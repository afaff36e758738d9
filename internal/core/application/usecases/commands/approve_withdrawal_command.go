package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApproveWithdrawalCommandIsNotConstructed = errors.New(
	"ApproveWithdrawalCommand must be created via NewApproveWithdrawalCommand constructor",
)

// ApproveWithdrawalCommand represents an admin approving a payout request.
type ApproveWithdrawalCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveWithdrawalCommand creates a command approving a withdrawal request.
func NewApproveWithdrawalCommand(requestID kernel.UUID) (ApproveWithdrawalCommand, error) {
	if err := requestID.Validate(); err != nil {
		return ApproveWithdrawalCommand{}, err
	}

	return ApproveWithdrawalCommand{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrApproveWithdrawalCommandIsNotConstructed)
}

// RequestID returns the request being approved.
func (c ApproveWithdrawalCommand) RequestID() kernel.UUID { return c.requestID }
