// Package withdrawalrepo provides data transfer objects and mapping functions
// for withdrawal request persistence.
package withdrawalrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WithdrawalRequestDTO represents the database structure for persisting
// withdrawal requests. Each row is linked one-to-one with the ledger hold
// transaction that carries the funds. The partial unique index on WalletID
// makes storage the arbiter of the one-pending-request-per-wallet rule, so
// two concurrent requests cannot both slip past the handler's read check.
type WithdrawalRequestDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uniq_pending_withdrawal_per_wallet,where:status = 'pending'"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status        string          `gorm:"type:varchar(16);not null;index"`
	Reason        string          `gorm:"type:text"`
	RequestedAt   time.Time       `gorm:"not null"`
	ReviewedAt    *time.Time
}

// TableName specifies the database table name for withdrawal requests.
func (WithdrawalRequestDTO) TableName() string {
	return "withdrawal_requests"
}

// fromDomain converts a withdrawal request to its database representation.
func fromDomain(request *wallet.WithdrawalRequest) WithdrawalRequestDTO {
	return WithdrawalRequestDTO{
		ID:            request.ID().Bytes(),
		WalletID:      request.WalletID().Bytes(),
		TransactionID: request.TransactionID().Bytes(),
		Amount:        request.Amount().Amount(),
		Status:        string(request.Status()),
		Reason:        request.Reason(),
		RequestedAt:   request.RequestedAt(),
		ReviewedAt:    request.ReviewedAt(),
	}
}

// toDomain converts a database DTO back to a withdrawal request.
func toDomain(dto WithdrawalRequestDTO) (*wallet.WithdrawalRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	walletID, err := kernel.UUIDFromBytes(dto.WalletID[:])
	if err != nil {
		return nil, err
	}
	transactionID, err := kernel.UUIDFromBytes(dto.TransactionID[:])
	if err != nil {
		return nil, err
	}

	return wallet.RestoreWithdrawalRequest(
		id,
		walletID,
		transactionID,
		kernel.NewMoney(dto.Amount),
		wallet.WithdrawalStatus(dto.Status),
		dto.Reason,
		dto.RequestedAt,
		dto.ReviewedAt,
	)
}
