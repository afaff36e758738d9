package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetWalletQueryIsNotConstructed = errors.New(
		"GetWalletQuery must be created via NewGetWalletQuery constructor",
	)
)

// GetWalletQuery retrieves an actor's wallet snapshot: balances, cash custody,
// the available-to-withdraw amount, and the transaction ledger.
type GetWalletQuery struct {
	ownerID   kernel.UUID
	ownerType wallet.OwnerType

	guard guard.ConstructorGuard
}

// NewGetWalletQuery creates a query for the given actor's wallet.
func NewGetWalletQuery(ownerID kernel.UUID, ownerType wallet.OwnerType) (GetWalletQuery, error) {
	if err := errors.Join(ownerID.Validate(), ownerType.Validate()); err != nil {
		return GetWalletQuery{}, err
	}

	return GetWalletQuery{
		ownerID:   ownerID,
		ownerType: ownerType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OwnerID returns the actor whose wallet is requested.
func (q GetWalletQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// OwnerType returns the kind of actor whose wallet is requested.
func (q GetWalletQuery) OwnerType() wallet.OwnerType {
	return q.ownerType
}

// Validate ensures the query was created through the constructor.
func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

// GetWalletQueryResponse is the wallet snapshot returned to API callers.
// AvailableBalance is derived at read time: cumulative earnings minus every
// outstanding withdrawal, floored at zero. It can differ from Balance, which
// reflects the raw ledger.
type GetWalletQueryResponse struct {
	WalletID         kernel.UUID
	OwnerID          kernel.UUID
	OwnerType        wallet.OwnerType
	Balance          kernel.Money
	TotalEarned      kernel.Money
	TotalWithdrawn   kernel.Money
	CashInHand       kernel.Money
	AvailableBalance kernel.Money
	Transactions     []WalletTransactionResponse
}

// WalletTransactionResponse is one ledger entry of the wallet snapshot.
type WalletTransactionResponse struct {
	ID      kernel.UUID
	Amount  kernel.Money
	Type    wallet.TransactionType
	Status  wallet.TransactionStatus
	OrderID *kernel.UUID
}
