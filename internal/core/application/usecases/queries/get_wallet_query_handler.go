package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// GetWalletQueryHandler reads wallet snapshots straight from the database.
type GetWalletQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletQueryHandler creates a handler for wallet snapshot queries.
func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

// Handle executes the query. The available balance is computed in the same
// read: total earnings minus the sum of pending and approved withdrawal
// requests, floored at zero.
func (h GetWalletQueryHandler) Handle(
	ctx context.Context,
	query GetWalletQuery,
) (GetWalletQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletQueryResponse{}, err
	}

	var walletRow struct {
		ID             uuid.UUID
		OwnerID        uuid.UUID
		Balance        decimal.Decimal
		TotalEarned    decimal.Decimal
		TotalWithdrawn decimal.Decimal
		CashInHand     decimal.Decimal
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			balance,
			total_earned,
			total_withdrawn,
			cash_in_hand
		FROM wallets
		WHERE owner_id = ? AND owner_type = ?
	`, query.OwnerID().Bytes(), string(query.OwnerType())).Scan(&walletRow)
	if result.Error != nil {
		return GetWalletQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetWalletQueryResponse{}, errs.NewObjectNotFoundError("wallet", query.OwnerID().String())
	}

	walletID, err := kernel.UUIDFromBytes(walletRow.ID[:])
	if err != nil {
		return GetWalletQueryResponse{}, err
	}

	var outstanding decimal.Decimal
	if err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM withdrawal_requests
		WHERE wallet_id = ? AND status IN (?, ?)
	`, walletRow.ID, string(wallet.WithdrawalPending), string(wallet.WithdrawalApproved)).
		Scan(&outstanding).Error; err != nil {
		return GetWalletQueryResponse{}, err
	}

	transactions, err := h.loadTransactions(ctx, walletRow.ID)
	if err != nil {
		return GetWalletQueryResponse{}, err
	}

	totalEarned := kernel.NewMoney(walletRow.TotalEarned)
	return GetWalletQueryResponse{
		WalletID:       walletID,
		OwnerID:        query.OwnerID(),
		OwnerType:      query.OwnerType(),
		Balance:        kernel.NewMoney(walletRow.Balance),
		TotalEarned:    totalEarned,
		TotalWithdrawn: kernel.NewMoney(walletRow.TotalWithdrawn),
		CashInHand:     kernel.NewMoney(walletRow.CashInHand),
		AvailableBalance: wallet.AvailableBalance(
			totalEarned, kernel.NewMoney(outstanding)),
		Transactions: transactions,
	}, nil
}

// loadTransactions reads the wallet's ledger entries, oldest first.
func (h GetWalletQueryHandler) loadTransactions(
	ctx context.Context,
	walletID uuid.UUID,
) ([]WalletTransactionResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			amount,
			type,
			status,
			order_id
		FROM wallet_transactions
		WHERE wallet_id = ?
		ORDER BY created_at
	`, walletID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]WalletTransactionResponse, 0)
	for rows.Next() {
		var (
			id      uuid.UUID
			amount  decimal.Decimal
			txType  string
			status  string
			orderID *uuid.UUID
		)
		if err = rows.Scan(&id, &amount, &txType, &status, &orderID); err != nil {
			return nil, err
		}

		txID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var orderRef *kernel.UUID
		if orderID != nil {
			oID, orderErr := kernel.UUIDFromBytes((*orderID)[:])
			if orderErr != nil {
				return nil, orderErr
			}
			orderRef = &oID
		}

		transactions = append(transactions, WalletTransactionResponse{
			ID:      txID,
			Amount:  kernel.NewMoney(amount),
			Type:    wallet.TransactionType(txType),
			Status:  wallet.TransactionStatus(status),
			OrderID: orderRef,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
