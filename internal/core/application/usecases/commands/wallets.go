package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// getOrCreateWallet loads an actor's wallet, creating an empty one on first
// reference. The created flag tells the caller whether to Add or Update.
func getOrCreateWallet(
	ctx context.Context,
	repo ports.WalletRepository,
	ownerID kernel.UUID,
	ownerType wallet.OwnerType,
) (*wallet.Wallet, bool, error) {
	existing, err := repo.GetByOwner(ctx, ownerID, ownerType)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	created, err := wallet.NewWallet(kernel.NewUUID(), ownerID, ownerType)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// saveWallet persists a wallet with the right repository verb for its origin.
func saveWallet(ctx context.Context, repo ports.WalletRepository, w *wallet.Wallet, created bool) error {
	if created {
		return repo.Add(ctx, w)
	}
	return repo.Update(ctx, w)
}
