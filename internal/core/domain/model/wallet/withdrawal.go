package wallet

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrWithdrawalIsNotConstructed is returned when a WithdrawalRequest instance
// was not created through a factory function.
var ErrWithdrawalIsNotConstructed = errors.New(
	"WithdrawalRequest must be created via NewWithdrawalRequest or RestoreWithdrawalRequest")

// WithdrawalStatus is the admin-review state of a withdrawal request.
type WithdrawalStatus string

const (
	// WithdrawalPending means the request awaits admin review.
	WithdrawalPending WithdrawalStatus = "pending"
	// WithdrawalApproved means an admin approved the payout.
	WithdrawalApproved WithdrawalStatus = "approved"
	// WithdrawalRejected means an admin rejected the request and the hold was released.
	WithdrawalRejected WithdrawalStatus = "rejected"
	// WithdrawalProcessed means the payout was executed.
	WithdrawalProcessed WithdrawalStatus = "processed"
)

// WithdrawalRequest is the admin-facing review record for a payout. It is
// linked one-to-one with the pending withdrawal transaction that holds the
// funds in the wallet ledger.
type WithdrawalRequest struct {
	id            kernel.UUID
	walletID      kernel.UUID
	transactionID kernel.UUID
	amount        kernel.Money
	status        WithdrawalStatus
	reason        string
	requestedAt   time.Time
	reviewedAt    *time.Time

	isConstructed bool
}

// NewWithdrawalRequest creates a pending request linked to the ledger hold.
func NewWithdrawalRequest(
	id, walletID, transactionID kernel.UUID,
	amount kernel.Money,
	at time.Time,
) (*WithdrawalRequest, error) {
	if err := errors.Join(id.Validate(), walletID.Validate(), transactionID.Validate()); err != nil {
		return nil, err
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}

	return &WithdrawalRequest{
		id:            id,
		walletID:      walletID,
		transactionID: transactionID,
		amount:        amount,
		status:        WithdrawalPending,
		requestedAt:   at,
		isConstructed: true,
	}, nil
}

// RestoreWithdrawalRequest reconstructs a request from persistence.
func RestoreWithdrawalRequest(
	id, walletID, transactionID kernel.UUID,
	amount kernel.Money,
	status WithdrawalStatus,
	reason string,
	requestedAt time.Time,
	reviewedAt *time.Time,
) (*WithdrawalRequest, error) {
	if err := errors.Join(id.Validate(), walletID.Validate(), transactionID.Validate()); err != nil {
		return nil, err
	}

	return &WithdrawalRequest{
		id:            id,
		walletID:      walletID,
		transactionID: transactionID,
		amount:        amount,
		status:        status,
		reason:        reason,
		requestedAt:   requestedAt,
		reviewedAt:    reviewedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the request was created through a factory function.
func (r *WithdrawalRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrWithdrawalIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *WithdrawalRequest) ID() kernel.UUID { return r.id }

// WalletID returns the wallet the payout draws from.
func (r *WithdrawalRequest) WalletID() kernel.UUID { return r.walletID }

// TransactionID returns the ledger hold entry backing this request.
func (r *WithdrawalRequest) TransactionID() kernel.UUID { return r.transactionID }

// Amount returns the requested payout amount.
func (r *WithdrawalRequest) Amount() kernel.Money { return r.amount }

// Status returns the review status.
func (r *WithdrawalRequest) Status() WithdrawalStatus { return r.status }

// Reason returns the rejection reason, empty unless rejected.
func (r *WithdrawalRequest) Reason() string { return r.reason }

// RequestedAt returns when the actor filed the request.
func (r *WithdrawalRequest) RequestedAt() time.Time { return r.requestedAt }

// ReviewedAt returns when an admin acted on the request, or nil.
func (r *WithdrawalRequest) ReviewedAt() *time.Time { return r.reviewedAt }

// IsOutstanding reports whether the request still holds funds: the hold stays
// in effect through pending and approved, and is only released on rejection or
// consumed by processing.
func (r *WithdrawalRequest) IsOutstanding() bool {
	return r.status == WithdrawalPending || r.status == WithdrawalApproved
}

// Approve marks the request approved. Approving twice is a silent no-op;
// approving a rejected or processed request fails the precondition.
func (r *WithdrawalRequest) Approve(at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == WithdrawalApproved {
		return nil
	}
	if r.status != WithdrawalPending {
		return errs.NewPreconditionFailedError("withdrawal is not pending")
	}

	r.status = WithdrawalApproved
	r.reviewedAt = &at
	return nil
}

// Reject marks the request rejected with a reason. Rejecting twice is a silent
// no-op; rejecting after approval fails the precondition.
func (r *WithdrawalRequest) Reject(reason string, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == WithdrawalRejected {
		return nil
	}
	if r.status != WithdrawalPending {
		return errs.NewPreconditionFailedError("withdrawal is not pending")
	}

	r.status = WithdrawalRejected
	r.reason = reason
	r.reviewedAt = &at
	return nil
}

// MarkProcessed records that the approved payout was executed.
func (r *WithdrawalRequest) MarkProcessed(at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.status == WithdrawalProcessed {
		return nil
	}
	if r.status != WithdrawalApproved {
		return errs.NewPreconditionFailedError("withdrawal is not approved")
	}

	r.status = WithdrawalProcessed
	r.reviewedAt = &at
	return nil
}
