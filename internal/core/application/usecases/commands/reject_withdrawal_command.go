package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRejectWithdrawalCommandIsNotConstructed = errors.New(
	"RejectWithdrawalCommand must be created via NewRejectWithdrawalCommand constructor",
)

// RejectWithdrawalCommand represents an admin rejecting a payout request.
type RejectWithdrawalCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectWithdrawalCommand creates a command rejecting a withdrawal request.
func NewRejectWithdrawalCommand(requestID kernel.UUID, reason string) (RejectWithdrawalCommand, error) {
	if err := requestID.Validate(); err != nil {
		return RejectWithdrawalCommand{}, err
	}
	if reason == "" {
		return RejectWithdrawalCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RejectWithdrawalCommand{
		requestID: requestID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRejectWithdrawalCommandIsNotConstructed)
}

// RequestID returns the request being rejected.
func (c RejectWithdrawalCommand) RequestID() kernel.UUID { return c.requestID }

// Reason returns the rejection reason shown to the actor.
func (c RejectWithdrawalCommand) Reason() string { return c.reason }
