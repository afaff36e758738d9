package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WithdrawalRepository defines the persistence contract for withdrawal requests.
type WithdrawalRepository interface {
	// Add persists a new withdrawal request.
	Add(ctx context.Context, request *wallet.WithdrawalRequest) error

	// Update persists a review-state change of an existing request.
	Update(ctx context.Context, request *wallet.WithdrawalRequest) error

	// Get retrieves a withdrawal request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*wallet.WithdrawalRequest, error)

	// GetOutstandingByWallet retrieves the wallet's pending and approved
	// requests. Used both to enforce the single-pending-request rule and to
	// compute the available balance.
	GetOutstandingByWallet(ctx context.Context, walletID kernel.UUID) ([]*wallet.WithdrawalRequest, error)
}
