package commission

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// PlatformFeeRecord is the immutable ledger entry of the platform's take on a
// settled order. At most one record exists per order; the repository enforces
// uniqueness and settlement checks for an existing record before writing.
type PlatformFeeRecord struct {
	id         kernel.UUID
	orderID    kernel.UUID
	sellerID   kernel.UUID
	amount     kernel.Money
	ruleID     *kernel.UUID
	recordedAt time.Time
}

// NewPlatformFeeRecord creates the platform's commission record for an order.
// ruleID is nil when the default rule produced the commission.
func NewPlatformFeeRecord(
	id, orderID, sellerID kernel.UUID,
	amount kernel.Money,
	ruleID *kernel.UUID,
	at time.Time,
) (*PlatformFeeRecord, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), sellerID.Validate()); err != nil {
		return nil, err
	}

	return &PlatformFeeRecord{
		id:         id,
		orderID:    orderID,
		sellerID:   sellerID,
		amount:     amount,
		ruleID:     ruleID,
		recordedAt: at,
	}, nil
}

// RestorePlatformFeeRecord reconstructs a record from persistence.
func RestorePlatformFeeRecord(
	id, orderID, sellerID kernel.UUID,
	amount kernel.Money,
	ruleID *kernel.UUID,
	recordedAt time.Time,
) *PlatformFeeRecord {
	return &PlatformFeeRecord{
		id:         id,
		orderID:    orderID,
		sellerID:   sellerID,
		amount:     amount,
		ruleID:     ruleID,
		recordedAt: recordedAt,
	}
}

// ID returns the record's unique identifier.
func (r *PlatformFeeRecord) ID() kernel.UUID { return r.id }

// OrderID returns the settled order.
func (r *PlatformFeeRecord) OrderID() kernel.UUID { return r.orderID }

// SellerID returns the seller the commission was charged to.
func (r *PlatformFeeRecord) SellerID() kernel.UUID { return r.sellerID }

// Amount returns the platform's commission amount.
func (r *PlatformFeeRecord) Amount() kernel.Money { return r.amount }

// RuleID returns the rule that produced the commission, nil for the default rule.
func (r *PlatformFeeRecord) RuleID() *kernel.UUID { return r.ruleID }

// RecordedAt returns when the record was written.
func (r *PlatformFeeRecord) RecordedAt() time.Time { return r.recordedAt }
