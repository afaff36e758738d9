package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates and
// their transaction ledgers.
type WalletRepository interface {
	// Add persists a new wallet aggregate to storage.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists changes to an existing wallet and appends new ledger entries.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// Get retrieves a wallet aggregate with its full ledger by identifier.
	Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error)

	// GetByOwner retrieves the wallet of an actor. Returns an object-not-found
	// error when the actor has no wallet yet; callers create wallets lazily.
	GetByOwner(ctx context.Context, ownerID kernel.UUID, ownerType wallet.OwnerType) (*wallet.Wallet, error)
}
