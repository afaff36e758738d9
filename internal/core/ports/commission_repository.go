package ports

import (
	"context"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
)

// CommissionRepository defines the persistence contract for commission rules
// and platform fee records.
type CommissionRepository interface {
	// GetSellerRules retrieves the seller's active and inactive commission rules.
	GetSellerRules(ctx context.Context, sellerID kernel.UUID) ([]commission.Rule, error)

	// AddPlatformFee persists the platform's commission record for an order.
	AddPlatformFee(ctx context.Context, record *commission.PlatformFeeRecord) error

	// GetPlatformFee retrieves the platform fee record for the order, or nil
	// when none was written yet. Settlement checks this before writing so the
	// record stays unique per order, and reads the recorded amount back on
	// replays.
	GetPlatformFee(ctx context.Context, orderID kernel.UUID) (*commission.PlatformFeeRecord, error)
}
