// Package walletrepo provides data transfer objects and mapping functions for
// wallet persistence. A wallet row owns its transaction rows; the ledger is
// loaded and saved together with the aggregate.
package walletrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletDTO represents the database structure for persisting wallet aggregates.
// An owner has at most one wallet per owner type.
type WalletDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_owner"`
	OwnerType      string           `gorm:"type:varchar(16);not null;uniqueIndex:idx_wallet_owner"`
	Balance        decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalEarned    decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalWithdrawn decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	CashInHand     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Transactions   []TransactionDTO `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for wallet entities.
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO represents one append-only ledger entry row.
type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type        string          `gorm:"type:varchar(16);not null"`
	Status      string          `gorm:"type:varchar(16);not null"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	ProcessedAt *time.Time
}

// TableName specifies the database table name for ledger entries.
func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

// fromDomain converts a wallet domain aggregate to its database representation.
func fromDomain(aggregate *wallet.Wallet) WalletDTO {
	walletID := aggregate.ID().Bytes()

	transactions := make([]TransactionDTO, 0, len(aggregate.Transactions()))
	for _, tx := range aggregate.Transactions() {
		var orderID *uuid.UUID
		if tx.OrderID() != nil {
			raw := tx.OrderID().Bytes()
			orderID = &raw
		}

		transactions = append(transactions, TransactionDTO{
			ID:          tx.ID().Bytes(),
			WalletID:    walletID,
			Amount:      tx.Amount().Amount(),
			Type:        string(tx.Type()),
			Status:      string(tx.Status()),
			OrderID:     orderID,
			CreatedAt:   tx.CreatedAt(),
			ProcessedAt: tx.ProcessedAt(),
		})
	}

	return WalletDTO{
		ID:             walletID,
		OwnerID:        aggregate.OwnerID().Bytes(),
		OwnerType:      string(aggregate.OwnerType()),
		Balance:        aggregate.Balance().Amount(),
		TotalEarned:    aggregate.TotalEarned().Amount(),
		TotalWithdrawn: aggregate.TotalWithdrawn().Amount(),
		CashInHand:     aggregate.CashInHand().Amount(),
		Transactions:   transactions,
	}
}

// toDomain converts a database DTO to a wallet domain aggregate using RestoreWallet.
func toDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	transactions := make([]*wallet.Transaction, 0, len(dto.Transactions))
	for _, txDto := range dto.Transactions {
		tx, txErr := transactionToDomain(txDto)
		if txErr != nil {
			return nil, txErr
		}
		transactions = append(transactions, tx)
	}

	return wallet.RestoreWallet(
		id,
		ownerID,
		wallet.OwnerType(dto.OwnerType),
		kernel.NewMoney(dto.Balance),
		kernel.NewMoney(dto.TotalEarned),
		kernel.NewMoney(dto.TotalWithdrawn),
		kernel.NewMoney(dto.CashInHand),
		transactions,
	)
}

// transactionToDomain converts a ledger row to a domain entity.
func transactionToDomain(dto TransactionDTO) (*wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return wallet.RestoreTransaction(
		id,
		kernel.NewMoney(dto.Amount),
		wallet.TransactionType(dto.Type),
		wallet.TransactionStatus(dto.Status),
		orderID,
		dto.CreatedAt,
		dto.ProcessedAt,
	)
}
